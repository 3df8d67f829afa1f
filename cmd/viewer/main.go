package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"chatdice/repositories"
)

func main() {
	_ = godotenv.Load()
	dbPath := flag.String("db", os.Getenv("BADGER_FILEPATH"), "Path to badger DB")
	prefix := flag.String("prefix", "msg:", "Prefix to scan (msg: or report:)")
	flag.Parse()

	// Open Badger in Read-Only mode
	// Note: BypassLockGuard allows opening if the server holds the lock
	opts := badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	switch {
	case strings.HasPrefix(*prefix, "report"):
		color.Warn.Println("Stored reports")
		table.SetHeader([]string{"At", "Room", "Reporter", "Reported", "Reason"})
		err = scanReports(db, table)
	default:
		color.Info.Println("Stored messages")
		table.SetHeader([]string{"At", "Room", "Author", "Content"})
		err = scanMessages(db, *prefix, table)
	}
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func scanMessages(db *badger.DB, prefix string, table *tablewriter.Table) error {
	return db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				var m repositories.StoredMessage
				if err := json.Unmarshal(v, &m); err != nil {
					fmt.Printf("Error unmarshaling key %s: %v\n", string(item.Key()), err)
					return nil
				}
				table.Append([]string{
					m.At.Format("2006-01-02 15:04:05"),
					shorten(m.RoomID),
					shorten(m.Author),
					m.Content,
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func scanReports(db *badger.DB, table *tablewriter.Table) error {
	return db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte("report:")
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				var r repositories.StoredReport
				if err := json.Unmarshal(v, &r); err != nil {
					fmt.Printf("Error unmarshaling key %s: %v\n", string(item.Key()), err)
					return nil
				}
				table.Append([]string{
					r.At.Format("2006-01-02 15:04:05"),
					shorten(r.RoomID),
					shorten(r.ReporterID),
					shorten(r.ReportedID),
					r.Reason,
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// shorten keeps the first 8 characters of an identifier for readability.
func shorten(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
