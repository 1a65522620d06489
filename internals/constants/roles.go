package constants

import "fmt"

const (
	RoleAdmin    = "admin"
	RolePenduduk = "penduduk"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess   = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyPendudukCanAccess = "❌ Hanya penduduk yang boleh mengakses fitur %s."
)

// Fungsi helper untuk menghasilkan pesan error dinamis
func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorPenduduk(feature string) string {
	return fmt.Sprintf(ErrOnlyPendudukCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RolePenduduk,
	}

	AdminOnly = []string{
		RoleAdmin,
	}

	PendudukOnly = []string{
		RolePenduduk,
	}
)
