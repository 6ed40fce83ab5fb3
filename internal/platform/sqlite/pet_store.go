package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/petdesk/petdesk/internal/domain"
	"github.com/petdesk/petdesk/internal/store"
)

// PetStore implements the store.PetStore interface using a SQLite
// database as the storage backend.
type PetStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPetStore creates a new SQLite implementation of the PetStore
// interface. It accepts a database connection or transaction that is
// initialized and managed by the caller. If logger is nil, a default
// logger is used.
func NewPetStore(db store.DBTX, logger *slog.Logger) *PetStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PetStore{
		db:     db,
		logger: logger.With(slog.String("component", "pet_store")),
	}
}

// Ensure PetStore implements store.PetStore interface
var _ store.PetStore = (*PetStore)(nil)

// WithTx implements store.PetStore.WithTx
func (s *PetStore) WithTx(tx *sql.Tx) store.PetStore {
	return NewPetStore(tx, s.logger)
}

const petColumns = `id, species, name, level, experience, evolution_stage,
	hunger, mood, energy, cosmetics, active, created_at, updated_at`

// Create implements store.PetStore.Create
func (s *PetStore) Create(ctx context.Context, pet *domain.Pet) error {
	if err := pet.Validate(); err != nil {
		return store.NewStoreError("pet", "create", "validation failed", err)
	}

	cosmetics, err := json.Marshal(pet.Cosmetics)
	if err != nil {
		return store.NewStoreError("pet", "create", "encode cosmetics", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pet.ID.String(), string(pet.Species), pet.Name, pet.Level,
		pet.Experience, pet.EvolutionStage,
		pet.Vitals.Hunger, pet.Vitals.Mood, pet.Vitals.Energy,
		string(cosmetics), boolToInt(pet.Active),
		toMillis(pet.CreatedAt), toMillis(pet.UpdatedAt),
	)
	if err != nil {
		return store.NewStoreError("pet", "create", "insert failed", err)
	}

	return nil
}

// GetByID implements store.PetStore.GetByID
func (s *PetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Pet, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+petColumns+` FROM pets WHERE id = ?`, id.String())

	pet, err := scanPet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrPetNotFound
	}
	if err != nil {
		return nil, store.NewStoreError("pet", "get", "scan failed", err)
	}

	return pet, nil
}

// List implements store.PetStore.List
func (s *PetStore) List(ctx context.Context) ([]*domain.Pet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+petColumns+` FROM pets ORDER BY created_at, id`)
	if err != nil {
		return nil, store.NewStoreError("pet", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	var pets []*domain.Pet
	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			return nil, store.NewStoreError("pet", "list", "scan failed", err)
		}
		pets = append(pets, pet)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("pet", "list", "iteration failed", err)
	}

	return pets, nil
}

// Update implements store.PetStore.Update
func (s *PetStore) Update(ctx context.Context, pet *domain.Pet) error {
	if err := pet.Validate(); err != nil {
		return store.NewStoreError("pet", "update", "validation failed", err)
	}

	cosmetics, err := json.Marshal(pet.Cosmetics)
	if err != nil {
		return store.NewStoreError("pet", "update", "encode cosmetics", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE pets SET species = ?, name = ?, level = ?, experience = ?,
			evolution_stage = ?, hunger = ?, mood = ?, energy = ?,
			cosmetics = ?, active = ?, updated_at = ?
		WHERE id = ?`,
		string(pet.Species), pet.Name, pet.Level, pet.Experience,
		pet.EvolutionStage,
		pet.Vitals.Hunger, pet.Vitals.Mood, pet.Vitals.Energy,
		string(cosmetics), boolToInt(pet.Active), toMillis(pet.UpdatedAt),
		pet.ID.String(),
	)
	if err != nil {
		return store.NewStoreError("pet", "update", "update failed", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return store.NewStoreError("pet", "update", "rows affected", err)
	}
	if affected == 0 {
		return store.ErrPetNotFound
	}

	return nil
}

// Delete implements store.PetStore.Delete
func (s *PetStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pets WHERE id = ?`, id.String())
	if err != nil {
		return store.NewStoreError("pet", "delete", "delete failed", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return store.NewStoreError("pet", "delete", "rows affected", err)
	}
	if affected == 0 {
		return store.ErrPetNotFound
	}

	return nil
}

// SetActive implements store.PetStore.SetActive. The target is
// verified before the current flag is cleared, so a miss leaves the
// active pet untouched rather than committing half the switch.
func (s *PetStore) SetActive(ctx context.Context, id uuid.UUID) error {
	if id != uuid.Nil {
		var one int
		err := s.db.QueryRowContext(ctx, `SELECT 1 FROM pets WHERE id = ?`, id.String()).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrPetNotFound
		}
		if err != nil {
			return store.NewStoreError("pet", "set_active", "lookup failed", err)
		}
	}

	if _, err := s.db.ExecContext(ctx, `UPDATE pets SET active = 0 WHERE active = 1`); err != nil {
		return store.NewStoreError("pet", "set_active", "clear failed", err)
	}

	if id == uuid.Nil {
		return nil
	}

	res, err := s.db.ExecContext(ctx, `UPDATE pets SET active = 1 WHERE id = ?`, id.String())
	if err != nil {
		return store.NewStoreError("pet", "set_active", "set failed", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return store.NewStoreError("pet", "set_active", "rows affected", err)
	}
	if affected == 0 {
		return store.ErrPetNotFound
	}

	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanPet.
type scanner interface {
	Scan(dest ...any) error
}

func scanPet(row scanner) (*domain.Pet, error) {
	var (
		id, species, name, cosmetics string
		active                       int
		createdAt, updatedAt         int64
	)
	pet := &domain.Pet{}

	err := row.Scan(&id, &species, &name, &pet.Level, &pet.Experience,
		&pet.EvolutionStage,
		&pet.Vitals.Hunger, &pet.Vitals.Mood, &pet.Vitals.Energy,
		&cosmetics, &active, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	pet.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	pet.Species = domain.Species(species)
	pet.Name = name
	pet.Active = active != 0
	pet.CreatedAt = fromMillis(createdAt)
	pet.UpdatedAt = fromMillis(updatedAt)

	if err := json.Unmarshal([]byte(cosmetics), &pet.Cosmetics); err != nil {
		return nil, err
	}

	return pet, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
