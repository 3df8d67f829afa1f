//go:generate go run go.uber.org/mock/mockgen -source=report.go -destination=../mocks/mock_report_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IReportRepository interface {
	StoreReport(report StoredReport) error
	GetReports() ([]StoredReport, error)
}

// ReportRepository is the append-only abuse report log. Reports are
// retained indefinitely; the retention purge only touches messages.
type ReportRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewReportRepository(db *badger.DB, log *slog.Logger) ReportRepository {
	return ReportRepository{db: db, log: log}
}

type StoredReport struct {
	ID         uuid.UUID `json:"id"`
	ReporterID string    `json:"reporter_id"`
	ReportedID string    `json:"reported_id"`
	RoomID     string    `json:"room_id"`
	Reason     string    `json:"reason"`
	At         time.Time `json:"at"`
}

// StoreReport persists a report under "report:{timestamp_padded}:{uuid}",
// the same ordering scheme as messages.
func (r ReportRepository) StoreReport(report StoredReport) error {
	key := fmt.Sprintf("report:%019d:%s", report.At.UnixNano(), report.ID)
	bytes, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// GetReports returns every stored report in chronological order.
func (r ReportRepository) GetReports() ([]StoredReport, error) {
	var raws [][]byte
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte("report:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				raws = append(raws, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var reports []StoredReport
	for _, raw := range raws {
		var report StoredReport
		if err = json.Unmarshal(raw, &report); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
