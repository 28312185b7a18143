package listings

import (
	"context"
	"fmt"
	"time"

	"listing-merge/core/database"
	"listing-merge/core/merge"

	"gorm.io/gorm"
)

// UnifiedBusiness is one merged listing in the database sink.
type UnifiedBusiness struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement"`
	RunID         string    `gorm:"column:run_id;size:36;index;not null"`
	HashKey       string    `gorm:"column:hash_key;size:64;index;not null"`
	CompanyName   *string   `gorm:"column:company_name;type:text"`
	Category      *string   `gorm:"column:category;type:text"`
	Address       *string   `gorm:"column:address;type:text"`
	CountryName   *string   `gorm:"column:country_name;size:255"`
	CountryCode   *string   `gorm:"column:country_code;size:16"`
	City          *string   `gorm:"column:city;size:255"`
	Phone         *string   `gorm:"column:phone;size:64"`
	RegionName    *string   `gorm:"column:region_name;size:255"`
	ZipCode       *string   `gorm:"column:zip_code;size:32"`
	Domain        *string   `gorm:"column:domain;size:255"`
	Email         *string   `gorm:"column:email;size:255"`
	LoadTimestamp time.Time `gorm:"column:load_timestamp;not null"`
}

// TableName overrides the table name.
func (UnifiedBusiness) TableName() string {
	return "unified_businesses"
}

// unifiedColumns are the columns the sink writes; an existing table must carry all of them.
var unifiedColumns = []string{
	"run_id", "hash_key", "company_name", "category", "address", "country_name",
	"country_code", "city", "phone", "region_name", "zip_code", "domain", "email",
	"load_timestamp",
}

// NewUnifiedBusiness converts a reconciled record into its database row.
func NewUnifiedBusiness(rec merge.UnifiedRecord) UnifiedBusiness {
	return UnifiedBusiness{
		RunID:         rec.RunID,
		HashKey:       rec.HashKey,
		CompanyName:   rec.Get(merge.FieldCompanyName),
		Category:      rec.Get(merge.FieldCategory),
		Address:       rec.Get(merge.FieldAddress),
		CountryName:   rec.Get(merge.FieldCountryName),
		CountryCode:   rec.Get(merge.FieldCountryCode),
		City:          rec.Get(merge.FieldCity),
		Phone:         rec.Get(merge.FieldPhone),
		RegionName:    rec.Get(merge.FieldRegionName),
		ZipCode:       rec.Get(merge.FieldZipCode),
		Domain:        rec.Get(merge.FieldDomain),
		Email:         rec.Get(merge.FieldEmail),
		LoadTimestamp: rec.LoadTimestamp.UTC(),
	}
}

// DBSink loads unified records into the unified_businesses table.
type DBSink struct {
	db        *gorm.DB
	batchSize int
}

// NewDBSink creates a sink. A non-positive batch size inserts 500 rows per statement.
func NewDBSink(db *gorm.DB, batchSize int) *DBSink {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &DBSink{db: db, batchSize: batchSize}
}

// Prepare creates or migrates the table and verifies it carries every unified column.
func (s *DBSink) Prepare(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database sink requires a connection")
	}

	db := s.db.WithContext(ctx)
	if err := db.AutoMigrate(&UnifiedBusiness{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", UnifiedBusiness{}.TableName(), err)
	}

	missing, err := database.MissingColumns(db, UnifiedBusiness{}.TableName(), unifiedColumns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns %v", UnifiedBusiness{}.TableName(), missing)
	}
	return nil
}

// Write inserts records in batches inside one transaction. When beforeCommit is
// set it runs after the inserts, and an error from it rolls the rows back.
func (s *DBSink) Write(ctx context.Context, records []merge.UnifiedRecord, beforeCommit func() error) (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database sink requires a connection")
	}

	written := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for start := 0; start < len(records); start += s.batchSize {
			end := min(start+s.batchSize, len(records))

			batch := make([]UnifiedBusiness, 0, end-start)
			for _, rec := range records[start:end] {
				batch = append(batch, NewUnifiedBusiness(rec))
			}
			if err := tx.Create(&batch).Error; err != nil {
				return fmt.Errorf("failed to insert rows %d-%d: %w", start, end-1, err)
			}
			written += len(batch)
		}

		if beforeCommit != nil {
			return beforeCommit()
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}
