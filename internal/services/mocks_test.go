package services

import (
	"context"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/pkg/types"
)

// Mock repositories

type MockEquipmentRepository struct {
	mock.Mock
}

func (m *MockEquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entities.Equipment), args.Get(1).(uint64), args.Error(2)
}

func (m *MockEquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) FindByAssetNumber(ctx context.Context, normalizedTag string) (*entities.Equipment, error) {
	args := m.Called(ctx, normalizedTag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) HighestAssetNumber(ctx context.Context, prefix string) (string, error) {
	args := m.Called(ctx, prefix)
	return args.String(0), args.Error(1)
}

func (m *MockEquipmentRepository) CreateEquipment(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) (uint64, error) {
	args := m.Called(ctx, tx, equipment)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockEquipmentRepository) UpdateEquipment(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) error {
	args := m.Called(ctx, tx, equipment)
	return args.Error(0)
}

func (m *MockEquipmentRepository) DeleteEquipment(ctx context.Context, tx pgx.Tx, id uint64) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockEquipmentRepository) GetStats(ctx context.Context) (*dto.EquipmentStatsDTO, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EquipmentStatsDTO), args.Error(1)
}

type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) GetPurchases(ctx context.Context, filter types.Filter) ([]entities.Purchase, uint64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entities.Purchase), args.Get(1).(uint64), args.Error(2)
}

func (m *MockPurchaseRepository) FindPurchase(ctx context.Context, id uint64) (*entities.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) CreatePurchase(ctx context.Context, tx pgx.Tx, purchase *entities.Purchase) (uint64, error) {
	args := m.Called(ctx, tx, purchase)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockPurchaseRepository) UpdatePurchase(ctx context.Context, tx pgx.Tx, purchase *entities.Purchase) error {
	args := m.Called(ctx, tx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) DeletePurchase(ctx context.Context, tx pgx.Tx, id uint64) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockPurchaseRepository) GetStats(ctx context.Context) (*dto.PurchaseStatsDTO, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PurchaseStatsDTO), args.Error(1)
}

type MockHistoryRepository struct {
	mock.Mock
	// entries собирает всё, что сервисы записали, для проверок содержимого.
	entries []entities.HistoryEntry
}

func (m *MockHistoryRepository) Create(ctx context.Context, entry *entities.HistoryEntry) (uint64, error) {
	args := m.Called(ctx, entry)
	m.entries = append(m.entries, *entry)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockHistoryRepository) CreateInTx(ctx context.Context, tx pgx.Tx, entry *entities.HistoryEntry) (uint64, error) {
	args := m.Called(ctx, tx, entry)
	if args.Error(1) == nil {
		m.entries = append(m.entries, *entry)
	}
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockHistoryRepository) GetAll(ctx context.Context, limit, offset int) ([]entities.HistoryEntry, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.HistoryEntry), args.Error(1)
}

func (m *MockHistoryRepository) GetRecent(ctx context.Context, limit int) ([]entities.HistoryEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.HistoryEntry), args.Error(1)
}

func (m *MockHistoryRepository) GetByEquipmentID(ctx context.Context, equipmentID uint64) ([]entities.HistoryEntry, error) {
	args := m.Called(ctx, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.HistoryEntry), args.Error(1)
}

func (m *MockHistoryRepository) GetByEntityType(ctx context.Context, entityType string) ([]entities.HistoryEntry, error) {
	args := m.Called(ctx, entityType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.HistoryEntry), args.Error(1)
}

func (m *MockHistoryRepository) DeleteByEquipmentID(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	args := m.Called(ctx, tx, equipmentID)
	return args.Error(0)
}

type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) Create(ctx context.Context, tx pgx.Tx, attachment *entities.Attachment) (uint64, error) {
	args := m.Called(ctx, tx, attachment)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockAttachmentRepository) FindAllByEquipmentID(ctx context.Context, equipmentID uint64) ([]entities.Attachment, error) {
	args := m.Called(ctx, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, id uint64) (*entities.Attachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockAttachmentRepository) DeleteByEquipmentID(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	args := m.Called(ctx, tx, equipmentID)
	return args.Error(0)
}

type MockTermRepository struct {
	mock.Mock
}

func (m *MockTermRepository) FindTerm(ctx context.Context, id uint64) (*entities.ResponsibilityTerm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ResponsibilityTerm), args.Error(1)
}

func (m *MockTermRepository) FindAllByEquipmentID(ctx context.Context, equipmentID uint64) ([]entities.ResponsibilityTerm, error) {
	args := m.Called(ctx, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ResponsibilityTerm), args.Error(1)
}

func (m *MockTermRepository) CreateTerm(ctx context.Context, tx pgx.Tx, term *entities.ResponsibilityTerm) (uint64, error) {
	args := m.Called(ctx, tx, term)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockTermRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	args := m.Called(ctx, tx, id, status)
	return args.Error(0)
}

func (m *MockTermRepository) UpdatePdfURL(ctx context.Context, tx pgx.Tx, id uint64, pdfURL string) error {
	args := m.Called(ctx, tx, id, pdfURL)
	return args.Error(0)
}

func (m *MockTermRepository) DeleteTerm(ctx context.Context, tx pgx.Tx, id uint64) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockTermRepository) DeleteByEquipmentID(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	args := m.Called(ctx, tx, equipmentID)
	return args.Error(0)
}

// fakeTxManager выполняет колбэк без реальной транзакции.
type fakeTxManager struct {
	failCommit error
}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	if err := fn(nil); err != nil {
		return err
	}
	return f.failCommit
}

// fakeCache — in-memory замена Redis для модульных тестов.
type fakeCache struct {
	values map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if s, ok := value.(string); ok {
		f.values[key] = s
	}
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	return f.values[key], nil
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.values, k)
	}
	return nil
}

// fakeFileStorage запоминает сохранённые и удалённые пути.
type fakeFileStorage struct {
	saved   []string
	deleted []string
	saveErr error
}

func (f *fakeFileStorage) Save(file io.Reader, relativePath string) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved = append(f.saved, relativePath)
	return relativePath, nil
}

func (f *fakeFileStorage) Delete(relativePath string) error {
	f.deleted = append(f.deleted, relativePath)
	return nil
}
