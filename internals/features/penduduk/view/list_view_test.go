package view

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pendudukku_backend/internals/features/penduduk/dto"
	"pendudukku_backend/internals/features/penduduk/service"
	helpers "pendudukku_backend/internals/helpers"
)

// fakeService merekam semua call; balasan dikontrol per test.
type fakeService struct {
	mu        sync.Mutex
	listCalls []service.ListQuery
	listRows  []dto.PendudukResponse
	listErr   error
	listCh    chan service.ListQuery

	createErr error
	updateErr error
	deleteErr error
	deleted   []uuid.UUID
}

func (f *fakeService) List(_ context.Context, q service.ListQuery) ([]dto.PendudukResponse, helpers.Pagination, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, q)
	rows, err, ch := f.listRows, f.listErr, f.listCh
	f.mu.Unlock()

	if ch != nil {
		ch <- q
	}
	if err != nil {
		return nil, helpers.Pagination{}, err
	}
	return rows, helpers.BuildPaginationFromPage(int64(len(rows)), q.Page, q.PerPage), nil
}

func (f *fakeService) Create(_ context.Context, req dto.CreatePendudukRequest, _ *uuid.UUID) (*dto.PendudukResponse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &dto.PendudukResponse{ID: uuid.New(), Nama: req.Nama}, nil
}

func (f *fakeService) Update(_ context.Context, _ uuid.UUID, _ dto.UpdatePendudukRequest, _ *uuid.UUID) error {
	return f.updateErr
}

func (f *fakeService) Delete(_ context.Context, id uuid.UUID, _ *uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	f.deleted = append(f.deleted, id)
	f.mu.Unlock()
	return nil
}

func (f *fakeService) calls() []service.ListQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.ListQuery, len(f.listCalls))
	copy(out, f.listCalls)
	return out
}

func sampleRow() dto.PendudukResponse {
	nik := "1234567890123456"
	return dto.PendudukResponse{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		NIK:             &nik,
		Nama:            "Budi",
		JenisKelamin:    "Laki-laki",
		TanggalLahir:    time.Date(1990, 5, 10, 0, 0, 0, 0, time.UTC),
		Kewarganegaraan: "Indonesia",
		Email:           "budi@x.com",
	}
}

/* ==========================
   Search & debounce
========================== */

func TestSetSearch_DebouncesToSingleFetch(t *testing.T) {
	fake := &fakeService{listCh: make(chan service.ListQuery, 5)}
	v := NewListView(fake, nil, 30*time.Millisecond)
	defer v.StopDebounce()

	// tiga keystroke beruntun → satu fetch dengan term terakhir
	v.SetSearch("b")
	v.SetSearch("bu")
	v.SetSearch("budi")

	select {
	case q := <-fake.listCh:
		assert.Equal(t, "budi", q.Search)
		assert.Equal(t, 1, q.Page)
	case <-time.After(time.Second):
		t.Fatal("fetch debounce tidak pernah jalan")
	}

	select {
	case q := <-fake.listCh:
		t.Errorf("fetch ekstra dengan term %q", q.Search)
	case <-time.After(100 * time.Millisecond):
	}

	assert.Len(t, fake.calls(), 1)
}

func TestSetSearch_ResetsToPageOne(t *testing.T) {
	fake := &fakeService{}
	v := NewListView(fake, nil, time.Hour) // debounce tidak akan sempat jalan
	defer v.StopDebounce()

	require.NoError(t, v.SetPage(context.Background(), 3))
	assert.Equal(t, 3, v.Page())

	v.SetSearch("siti")
	assert.Equal(t, 1, v.Page())
	assert.Equal(t, "siti", v.Search())
}

func TestRefresh_ErrorQueuesDestructiveToast(t *testing.T) {
	fake := &fakeService{listErr: errors.New("db mati")}
	v := NewListView(fake, nil, 0)
	defer v.StopDebounce()

	require.Error(t, v.Refresh(context.Background()))

	toasts := v.DrainToasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "destructive", toasts[0].Variant)
}

/* ==========================
   Modal + draft
========================== */

func TestOpenModals_MutuallyExclusive(t *testing.T) {
	fake := &fakeService{listRows: []dto.PendudukResponse{sampleRow()}}
	v := NewListView(fake, nil, 0)
	defer v.StopDebounce()
	require.NoError(t, v.Refresh(context.Background()))
	id := v.Rows()[0].ID

	require.NoError(t, v.OpenAdd())
	assert.ErrorIs(t, v.OpenEdit(id), ErrModalBusy)
	assert.ErrorIs(t, v.OpenDelete(id), ErrModalBusy)

	v.CloseModal()
	require.NoError(t, v.OpenDelete(id))
	assert.Equal(t, ModalDelete, v.ModalMode())
}

func TestOpenEdit_PrefillsDraftFromRow(t *testing.T) {
	row := sampleRow()
	fake := &fakeService{listRows: []dto.PendudukResponse{row}}
	v := NewListView(fake, nil, 0)
	defer v.StopDebounce()
	require.NoError(t, v.Refresh(context.Background()))

	require.NoError(t, v.OpenEdit(row.ID))

	d := v.Draft()
	assert.Equal(t, "Budi", d.Nama)
	assert.Equal(t, "1234567890123456", d.NIK)
	assert.Equal(t, "1990-05-10", d.TanggalLahir)
	assert.Equal(t, "budi@x.com", d.Email)
}

func TestOpenEdit_UnknownRow(t *testing.T) {
	fake := &fakeService{}
	v := NewListView(fake, nil, 0)
	defer v.StopDebounce()

	assert.ErrorIs(t, v.OpenEdit(uuid.New()), ErrRowNotFound)
	assert.Equal(t, ModalClosed, v.ModalMode())
}

/* ==========================
   Submit paths
========================== */

func TestSubmitAdd_ValidationKeepsModalOpen(t *testing.T) {
	fake := &fakeService{createErr: &service.ValidationError{
		Errors: map[string][]string{"email": {"Email sudah terdaftar."}},
	}}
	v := NewListView(fake, nil, 0)
	defer v.StopDebounce()

	require.NoError(t, v.OpenAdd())
	err := v.SubmitAdd(context.Background())

	require.NoError(t, err) // error validasi bukan failure alur
	assert.Equal(t, ModalAdd, v.ModalMode())
	assert.Equal(t, []string{"Email sudah terdaftar."}, v.FieldErrors()["email"])
	assert.Empty(t, v.DrainToasts())
	assert.Empty(t, fake.calls()) // tidak ada refresh
}

func TestSubmitAdd_SuccessClosesRefreshesAndToasts(t *testing.T) {
	fake := &fakeService{}
	v := NewListView(fake, nil, 0)
	defer v.StopDebounce()

	require.NoError(t, v.OpenAdd())
	d := v.Draft()
	d.Nama = "Siti"
	d.JenisKelamin = "Perempuan"
	d.Email = "siti@x.com"
	d.Password = "password1"

	require.NoError(t, v.SubmitAdd(context.Background()))

	assert.Equal(t, ModalClosed, v.ModalMode())
	assert.Len(t, fake.calls(), 1) // list di-refresh

	toasts := v.DrainToasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "success", toasts[0].Variant)
	assert.Equal(t, "Penduduk berhasil ditambahkan.", toasts[0].Message)
}

func TestSubmitAdd_WithoutModal(t *testing.T) {
	v := NewListView(&fakeService{}, nil, 0)
	defer v.StopDebounce()

	assert.ErrorIs(t, v.SubmitAdd(context.Background()), ErrModalBusy)
}

func TestSubmitEdit_ValidationKeepsModalOpen(t *testing.T) {
	row := sampleRow()
	fake := &fakeService{
		listRows: []dto.PendudukResponse{row},
		updateErr: &service.ValidationError{
			Errors: map[string][]string{"nik": {"NIK sudah terdaftar."}},
		},
	}
	v := NewListView(fake, nil, 0)
	defer v.StopDebounce()
	require.NoError(t, v.Refresh(context.Background()))
	require.NoError(t, v.OpenEdit(row.ID))

	require.NoError(t, v.SubmitEdit(context.Background()))
	assert.Equal(t, ModalEdit, v.ModalMode())
	assert.Equal(t, []string{"NIK sudah terdaftar."}, v.FieldErrors()["nik"])
}

func TestConfirmDelete_Success(t *testing.T) {
	row := sampleRow()
	fake := &fakeService{listRows: []dto.PendudukResponse{row}}
	v := NewListView(fake, nil, 0)
	defer v.StopDebounce()
	require.NoError(t, v.Refresh(context.Background()))
	require.NoError(t, v.OpenDelete(row.ID))

	require.NoError(t, v.ConfirmDelete(context.Background()))

	assert.Equal(t, ModalClosed, v.ModalMode())
	assert.Equal(t, []uuid.UUID{row.ID}, fake.deleted)

	toasts := v.DrainToasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Penduduk berhasil dihapus.", toasts[0].Message)
}

func TestConfirmDelete_ErrorClosesWithDestructiveToast(t *testing.T) {
	row := sampleRow()
	fake := &fakeService{
		listRows:  []dto.PendudukResponse{row},
		deleteErr: errors.New("db mati"),
	}
	v := NewListView(fake, nil, 0)
	defer v.StopDebounce()
	require.NoError(t, v.Refresh(context.Background()))
	require.NoError(t, v.OpenDelete(row.ID))

	require.Error(t, v.ConfirmDelete(context.Background()))
	assert.Equal(t, ModalClosed, v.ModalMode())

	toasts := v.DrainToasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "destructive", toasts[0].Variant)
}

/* ==========================
   Flash / toast
========================== */

func TestPushFlash_DrainsOnce(t *testing.T) {
	v := NewListView(&fakeService{}, nil, 0)
	defer v.StopDebounce()

	v.PushFlash("success", "Penduduk berhasil diperbarui.")
	v.PushFlash("error", "Terjadi kesalahan.")

	toasts := v.DrainToasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, "success", toasts[0].Variant)
	assert.Equal(t, "destructive", toasts[1].Variant)

	assert.Empty(t, v.DrainToasts()) // sekali tampil, habis
}
