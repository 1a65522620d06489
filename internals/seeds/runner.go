package seeds

import (
	"gorm.io/gorm"

	pendudukSeed "pendudukku_backend/internals/seeds/penduduk"
	userSeed "pendudukku_backend/internals/seeds/users"
)

// RunAllSeeds isi data awal: akun admin + contoh penduduk.
// Aman dijalankan berulang (baris yang sudah ada dilewati).
func RunAllSeeds(db *gorm.DB) {
	userSeed.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")
	pendudukSeed.SeedPenduduksFromJSON(db, "internals/seeds/penduduk/data_penduduks.json")
}
