package view

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"pendudukku_backend/internals/features/penduduk/dto"
	"pendudukku_backend/internals/features/penduduk/service"
	helpers "pendudukku_backend/internals/helpers"
)

// DefaultDebounce: jeda ketik sebelum search memicu fetch ulang.
const DefaultDebounce = 300 * time.Millisecond

var ErrRowNotFound = errors.New("baris tidak ditemukan di halaman ini")

// Service: operasi penduduk yang dipakai view (dipenuhi *service.PendudukService).
type Service interface {
	List(ctx context.Context, q service.ListQuery) ([]dto.PendudukResponse, helpers.Pagination, error)
	Create(ctx context.Context, req dto.CreatePendudukRequest, actorID *uuid.UUID) (*dto.PendudukResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdatePendudukRequest, actorID *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error
}

// Toast notifikasi transien (flash message satu kali pakai).
type Toast struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Variant string `json:"variant"` // success | destructive
}

// ListView: state halaman admin penduduk. Alur data satu arah:
// draft masuk → command tervalidasi keluar → render ulang dari response.
// Model eksekusinya kooperatif; mutex hanya melindungi callback debounce
// yang jalan dari goroutine timer.
type ListView struct {
	svc     Service
	actorID *uuid.UUID

	mu         sync.Mutex
	search     string
	page       int
	perPage    int
	rows       []dto.PendudukResponse
	pagination helpers.Pagination

	modal       Modal
	draft       Draft
	fieldErrors map[string][]string
	toasts      []Toast

	debouncer *Debouncer
}

func NewListView(svc Service, actorID *uuid.UUID, debounce time.Duration) *ListView {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &ListView{
		svc:         svc,
		actorID:     actorID,
		page:        1,
		perPage:     10,
		fieldErrors: map[string][]string{},
		debouncer:   NewDebouncer(debounce),
	}
}

/* ==========================
   Fetch & search
========================== */

// Refresh fetch ulang halaman sekarang dengan search sekarang.
func (v *ListView) Refresh(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.refreshLocked(ctx)
}

func (v *ListView) refreshLocked(ctx context.Context) error {
	rows, pagination, err := v.svc.List(ctx, service.ListQuery{
		Search:  v.search,
		Page:    v.page,
		PerPage: v.perPage,
	})
	if err != nil {
		v.pushToastLocked(Toast{Title: "Error", Message: "Gagal memuat data penduduk", Variant: "destructive"})
		return err
	}
	v.rows = rows
	v.pagination = pagination
	return nil
}

// SetSearch update teks pencarian; fetch-nya didebounce dan halaman
// balik ke 1. Keystroke baru membatalkan timer yang masih pending.
func (v *ListView) SetSearch(q string) {
	v.mu.Lock()
	v.search = q
	v.page = 1
	v.mu.Unlock()

	v.debouncer.Schedule(func() {
		_ = v.Refresh(context.Background())
	})
}

func (v *ListView) SetPage(ctx context.Context, page int) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if page < 1 {
		page = 1
	}
	v.page = page
	return v.refreshLocked(ctx)
}

/* ==========================
   Modal lifecycle
========================== */

func (v *ListView) OpenAdd() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.modal.OpenAdd(); err != nil {
		return err
	}
	v.draft = NewDraft(time.Now())
	v.fieldErrors = map[string][]string{}
	return nil
}

// OpenEdit prefill draft dari baris terpilih di halaman sekarang.
func (v *ListView) OpenEdit(id uuid.UUID) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	row, ok := v.findRowLocked(id)
	if !ok {
		return ErrRowNotFound
	}
	if err := v.modal.OpenEdit(id); err != nil {
		return err
	}
	v.draft = DraftFromResponse(row)
	v.fieldErrors = map[string][]string{}
	return nil
}

func (v *ListView) OpenDelete(id uuid.UUID) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.findRowLocked(id); !ok {
		return ErrRowNotFound
	}
	return v.modal.OpenDelete(id)
}

func (v *ListView) CloseModal() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modal.Close()
	v.draft = Draft{}
	v.fieldErrors = map[string][]string{}
}

/* ==========================
   Submit paths
========================== */

// SubmitAdd kirim draft sebagai Create. Error validasi TIDAK menutup
// modal: pesan per field tersedia lewat FieldErrors().
func (v *ListView) SubmitAdd(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.modal.Mode() != ModalAdd {
		return ErrModalBusy
	}

	_, err := v.svc.Create(ctx, v.draft.ToCreateRequest(), v.actorID)
	if err != nil {
		return v.handleSubmitErrLocked(err, "Gagal menambahkan penduduk")
	}

	v.closeAndFlashLocked("Penduduk berhasil ditambahkan.")
	return v.refreshLocked(ctx)
}

func (v *ListView) SubmitEdit(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.modal.Mode() != ModalEdit {
		return ErrModalBusy
	}

	err := v.svc.Update(ctx, v.modal.TargetID(), v.draft.ToUpdateRequest(), v.actorID)
	if err != nil {
		return v.handleSubmitErrLocked(err, "Gagal memperbarui penduduk")
	}

	v.closeAndFlashLocked("Penduduk berhasil diperbarui.")
	return v.refreshLocked(ctx)
}

func (v *ListView) ConfirmDelete(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.modal.Mode() != ModalDelete {
		return ErrModalBusy
	}

	if err := v.svc.Delete(ctx, v.modal.TargetID(), v.actorID); err != nil {
		v.modal.Close()
		v.pushToastLocked(Toast{Title: "Error", Message: "Gagal menghapus penduduk", Variant: "destructive"})
		return err
	}

	v.closeAndFlashLocked("Penduduk berhasil dihapus.")
	return v.refreshLocked(ctx)
}

func (v *ListView) handleSubmitErrLocked(err error, genericMsg string) error {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		// modal tetap terbuka, error tampil inline per field
		v.fieldErrors = ve.Errors
		return nil
	}
	v.pushToastLocked(Toast{Title: "Error", Message: genericMsg, Variant: "destructive"})
	return err
}

func (v *ListView) closeAndFlashLocked(message string) {
	v.modal.Close()
	v.draft = Draft{}
	v.fieldErrors = map[string][]string{}
	v.pushToastLocked(Toast{Title: "Sukses", Message: message, Variant: "success"})
}

/* ==========================
   Flash / toast
========================== */

// PushFlash terima flash satu kali pakai dari server ({type, message}).
func (v *ListView) PushFlash(flashType, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	title, variant := "Sukses", "success"
	if flashType == "error" {
		title, variant = "Error", "destructive"
	}
	v.pushToastLocked(Toast{Title: title, Message: message, Variant: variant})
}

// DrainToasts ambil semua toast pending (sekali tampil, habis).
func (v *ListView) DrainToasts() []Toast {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := v.toasts
	v.toasts = nil
	return out
}

func (v *ListView) pushToastLocked(t Toast) {
	v.toasts = append(v.toasts, t)
}

/* ==========================
   Read accessors
========================== */

func (v *ListView) Search() string { v.mu.Lock(); defer v.mu.Unlock(); return v.search }
func (v *ListView) Page() int      { v.mu.Lock(); defer v.mu.Unlock(); return v.page }

func (v *ListView) ModalMode() ModalMode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.modal.Mode()
}

func (v *ListView) Rows() []dto.PendudukResponse {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rows
}

func (v *ListView) Pagination() helpers.Pagination {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pagination
}

// Draft pointer supaya handler input bisa mutasi field form langsung.
func (v *ListView) Draft() *Draft { return &v.draft }

func (v *ListView) FieldErrors() map[string][]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.fieldErrors
}

// StopDebounce dipanggil saat view dilepas (unmount).
func (v *ListView) StopDebounce() { v.debouncer.Stop() }

func (v *ListView) findRowLocked(id uuid.UUID) (dto.PendudukResponse, bool) {
	for _, r := range v.rows {
		if r.ID == id {
			return r, true
		}
	}
	return dto.PendudukResponse{}, false
}
