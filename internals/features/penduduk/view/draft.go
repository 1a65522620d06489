package view

import (
	"strings"
	"time"

	"pendudukku_backend/internals/features/penduduk/dto"
)

// Draft: nilai form modal, semua string (apa adanya dari input).
// Independen dari state list sampai disubmit.
type Draft struct {
	NIK              string
	Nama             string
	Alamat           string
	JenisKelamin     string
	TempatLahir      string
	TanggalLahir     string // YYYY-MM-DD
	Agama            string
	StatusPerkawinan string
	Pekerjaan        string
	Kewarganegaraan  string
	Email            string
	Password         string
}

// NewDraft form kosong untuk modal add; tanggal lahir default hari ini.
func NewDraft(now time.Time) Draft {
	return Draft{
		TanggalLahir: now.Format("2006-01-02"),
	}
}

// DraftFromResponse prefill modal edit dari baris terpilih;
// field tanggal diformat ulang ke YYYY-MM-DD untuk input date.
func DraftFromResponse(p dto.PendudukResponse) Draft {
	return Draft{
		NIK:              strPtrValue(p.NIK),
		Nama:             p.Nama,
		Alamat:           strPtrValue(p.Alamat),
		JenisKelamin:     p.JenisKelamin,
		TempatLahir:      strPtrValue(p.TempatLahir),
		TanggalLahir:     p.TanggalLahir.Format("2006-01-02"),
		Agama:            strPtrValue(p.Agama),
		StatusPerkawinan: strPtrValue(p.StatusPerkawinan),
		Pekerjaan:        strPtrValue(p.Pekerjaan),
		Kewarganegaraan:  p.Kewarganegaraan,
		Email:            p.Email,
	}
}

func (d Draft) ToCreateRequest() dto.CreatePendudukRequest {
	return dto.CreatePendudukRequest{
		NIK:              optional(d.NIK),
		Nama:             strings.TrimSpace(d.Nama),
		Alamat:           optional(d.Alamat),
		JenisKelamin:     d.JenisKelamin,
		TempatLahir:      optional(d.TempatLahir),
		TanggalLahir:     optional(d.TanggalLahir),
		Agama:            optional(d.Agama),
		StatusPerkawinan: optional(d.StatusPerkawinan),
		Pekerjaan:        optional(d.Pekerjaan),
		Kewarganegaraan:  optional(d.Kewarganegaraan),
		Email:            strings.TrimSpace(d.Email),
		Password:         d.Password,
	}
}

func (d Draft) ToUpdateRequest() dto.UpdatePendudukRequest {
	return dto.UpdatePendudukRequest{
		NIK:              optional(d.NIK),
		Nama:             strings.TrimSpace(d.Nama),
		Alamat:           optional(d.Alamat),
		JenisKelamin:     d.JenisKelamin,
		TempatLahir:      optional(d.TempatLahir),
		TanggalLahir:     optional(d.TanggalLahir),
		Agama:            optional(d.Agama),
		StatusPerkawinan: optional(d.StatusPerkawinan),
		Pekerjaan:        optional(d.Pekerjaan),
		Kewarganegaraan:  optional(d.Kewarganegaraan),
	}
}

// string kosong → nil (field opsional tidak dikirim)
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func strPtrValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
