package service

import "errors"

// ErrNotFound: id penduduk tidak dikenal.
var ErrNotFound = errors.New("penduduk tidak ditemukan")

// ValidationError membawa pesan error per field (termasuk konflik
// unik email/NIK). Tidak ada mutasi yang terjadi kalau error ini keluar.
type ValidationError struct {
	Errors map[string][]string
}

func (e *ValidationError) Error() string {
	return "validasi gagal"
}

func addFieldError(errs map[string][]string, field, msg string) {
	errs[field] = append(errs[field], msg)
}
