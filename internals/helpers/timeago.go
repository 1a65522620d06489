package helper

import (
	"fmt"
	"time"
)

// TimeAgo merender selisih waktu gaya "diffForHumans" dalam Bahasa Indonesia,
// mis. "3 hari yang lalu". Acuan: now (diinject supaya gampang dites).
func TimeAgo(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = 0
	}

	switch {
	case diff < time.Minute:
		s := int(diff.Seconds())
		if s < 1 {
			s = 1
		}
		return fmt.Sprintf("%d detik yang lalu", s)
	case diff < time.Hour:
		return fmt.Sprintf("%d menit yang lalu", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d jam yang lalu", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%d hari yang lalu", int(diff.Hours()/24))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%d minggu yang lalu", int(diff.Hours()/(24*7)))
	case diff < 365*24*time.Hour:
		return fmt.Sprintf("%d bulan yang lalu", int(diff.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%d tahun yang lalu", int(diff.Hours()/(24*365)))
	}
}

// FormatRegistrationDate format absolut yang dipakai tabel admin (Y-m-d H:i:s).
func FormatRegistrationDate(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
