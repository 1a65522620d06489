package view

import (
	"errors"

	"github.com/google/uuid"
)

// Tiga modal (add / edit / delete-confirm) saling eksklusif:
// state modal dimodelkan eksplisit, bukan tiga flag terpisah.
type ModalMode int

const (
	ModalClosed ModalMode = iota
	ModalAdd
	ModalEdit
	ModalDelete
)

var ErrModalBusy = errors.New("modal lain masih terbuka")

type Modal struct {
	mode     ModalMode
	targetID uuid.UUID
}

func (m *Modal) Mode() ModalMode { return m.mode }

// TargetID hanya bermakna pada mode edit/delete.
func (m *Modal) TargetID() uuid.UUID { return m.targetID }

func (m *Modal) OpenAdd() error {
	if m.mode != ModalClosed {
		return ErrModalBusy
	}
	m.mode = ModalAdd
	m.targetID = uuid.Nil
	return nil
}

func (m *Modal) OpenEdit(id uuid.UUID) error {
	if m.mode != ModalClosed {
		return ErrModalBusy
	}
	m.mode = ModalEdit
	m.targetID = id
	return nil
}

func (m *Modal) OpenDelete(id uuid.UUID) error {
	if m.mode != ModalClosed {
		return ErrModalBusy
	}
	m.mode = ModalDelete
	m.targetID = id
	return nil
}

// Close selalu sah dari state mana pun.
func (m *Modal) Close() {
	m.mode = ModalClosed
	m.targetID = uuid.Nil
}
