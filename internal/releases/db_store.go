package releases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ErrUnsupportedDriver indicates the store URL uses an unsupported database
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// releaseRecord is the table layout of an Entry
type releaseRecord struct {
	ID        string    `gorm:"primaryKey;size:64"`
	CreatedAt time.Time `gorm:"index"`
	Title     string
	DateRange string
	Repo      string
	Base      string
	Head      string
	Changes   []string `gorm:"serializer:json"`
	Impact    []string `gorm:"serializer:json"`
	Risks     []string `gorm:"serializer:json"`
}

func (releaseRecord) TableName() string {
	return "releases"
}

func recordFromEntry(e Entry) releaseRecord {
	return releaseRecord(e)
}

func (r releaseRecord) entry() Entry {
	e := Entry(r)
	e.CreatedAt = e.CreatedAt.UTC()
	e.Changes = nonNil(e.Changes)
	e.Impact = nonNil(e.Impact)
	e.Risks = nonNil(e.Risks)
	return e
}

// DBStore keeps entries in a SQL database through GORM.
// Supported URLs: sqlite:///path/to/file.db, postgres://... and postgresql://...
type DBStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDBStore(ctx context.Context, url string) (*DBStore, error) {
	dialector, err := parseDialector(url)
	if err != nil {
		return nil, fmt.Errorf("parse store url: %w", err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: slogGormLogger{}})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&releaseRecord{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate releases table: %w", err)
	}

	slog.Debug("Opened release database", "dialect", db.Name())
	return &DBStore{db: db, now: time.Now}, nil
}

func (s *DBStore) List(ctx context.Context) ([]Entry, error) {
	var records []releaseRecord
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list releases: %w", err)
	}

	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, r.entry())
	}
	return entries, nil
}

func (s *DBStore) Get(ctx context.Context, id string) (Entry, error) {
	var record releaseRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get release %s: %w", id, err)
	}
	return record.entry(), nil
}

func (s *DBStore) Publish(ctx context.Context, entry Entry) (Entry, error) {
	entry = stamp(entry, s.now())

	record := recordFromEntry(entry)
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return Entry{}, fmt.Errorf("publish release: %w", err)
	}

	slog.Debug("Published release", "id", entry.ID, "title", entry.Title)
	return entry, nil
}

func (s *DBStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get underlying db: %w", err)
	}
	return sqlDB.Close()
}

func parseDialector(url string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(url, "sqlite:///"):
		return sqlite.Open(strings.TrimPrefix(url, "sqlite:///")), nil
	case strings.HasPrefix(url, "postgresql://"), strings.HasPrefix(url, "postgres://"):
		return postgres.Open(url), nil
	default:
		return nil, ErrUnsupportedDriver
	}
}
