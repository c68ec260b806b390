package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/latviz/internal/format"
	"github.com/vmihailenco/msgpack/v5"
)

type Format string

const (
	FormatCSV     Format = "csv"
	FormatMsgpack Format = "msgpack"
)

var ErrUnknownFormat = errors.New("storage: unknown export format")

const (
	metadataFile = "metadata.json"
	csvFile      = "optics.csv"
	msgpackFile  = "optics.msgpack"
)

// ParseFormat accepts "csv" or "msgpack".
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatCSV, FormatMsgpack:
		return f, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// ExportMetadata describes one export. Parameters are the rendered global
// lattice parameters at export time.
type ExportMetadata struct {
	ID          string       `json:"id" msgpack:"id"`
	Lattice     string       `json:"lattice" msgpack:"lattice"`
	Timestamp   time.Time    `json:"timestamp" msgpack:"timestamp"`
	EnergyGeV   float64      `json:"energy_gev" msgpack:"energy_gev"`
	Superperiod int          `json:"superperiod,omitempty" msgpack:"superperiod,omitempty"`
	Elements    int          `json:"elements" msgpack:"elements"`
	Format      Format       `json:"format" msgpack:"format"`
	Parameters  []format.Row `json:"parameters" msgpack:"parameters"`
}

type document struct {
	Meta  ExportMetadata `msgpack:"meta"`
	Table *Table         `msgpack:"table"`
}

// Save writes meta and table under a fresh id and returns it. ID, Timestamp,
// Elements and Format in meta are filled in by Save.
func (s *Store) Save(meta ExportMetadata, table *Table, f Format) (string, error) {
	if _, err := ParseFormat(string(f)); err != nil {
		return "", err
	}

	meta.ID = uuid.New().String()
	meta.Timestamp = time.Now().UTC()
	meta.Elements = len(table.Rows)
	meta.Format = f

	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(dir, metadataFile), meta); err != nil {
		return "", err
	}

	var err error
	switch f {
	case FormatMsgpack:
		err = writeMsgpack(filepath.Join(dir, msgpackFile), document{Meta: meta, Table: table})
	default:
		err = writeCSV(filepath.Join(dir, csvFile), table)
	}
	if err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeJSON(path string, meta ExportMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeMsgpack(path string, doc document) error {
	data, err := msgpack.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 12, 64)
}

func writeCSV(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(tableHeader); err != nil {
		return err
	}
	for _, r := range t.Rows {
		rec := []string{
			strconv.Itoa(r.Index), r.Name, r.Kind,
			formatFloat(r.S), formatFloat(r.Length),
			formatFloat(r.BetaX), formatFloat(r.BetaY),
			formatFloat(r.AlphaX), formatFloat(r.AlphaY),
			formatFloat(r.DispX), formatFloat(r.DispPX),
			formatFloat(r.MuX), formatFloat(r.MuY),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the metadata of every export, newest first. Directories
// without readable metadata are skipped.
func (s *Store) List() ([]ExportMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ExportMetadata{}, nil
		}
		return nil, err
	}

	exports := make([]ExportMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		exports = append(exports, *meta)
	}

	sort.Slice(exports, func(i, j int) bool {
		return exports[i].Timestamp.After(exports[j].Timestamp)
	})
	return exports, nil
}

func (s *Store) Load(id string) (*ExportMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta ExportMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTable reads the optics table of an export in whichever format it was
// written.
func (s *Store) LoadTable(id string) (*Table, error) {
	meta, err := s.Load(id)
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(s.baseDir, id)

	if meta.Format == FormatMsgpack {
		data, err := os.ReadFile(filepath.Join(dir, msgpackFile))
		if err != nil {
			return nil, err
		}
		var doc document
		if err := msgpack.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return doc.Table, nil
	}
	return readCSV(filepath.Join(dir, csvFile))
}

func readCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(tableHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	t := &Table{}
	if len(records) < 2 {
		return t, nil
	}
	for i, rec := range records[1:] {
		idx, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("storage: row %d: %w", i+1, err)
		}
		var v [10]float64
		for j := range v {
			if v[j], err = strconv.ParseFloat(rec[3+j], 64); err != nil {
				return nil, fmt.Errorf("storage: row %d column %s: %w", i+1, tableHeader[3+j], err)
			}
		}
		t.Rows = append(t.Rows, OpticsRow{
			Index: idx, Name: rec[1], Kind: rec[2],
			S: v[0], Length: v[1],
			BetaX: v[2], BetaY: v[3],
			AlphaX: v[4], AlphaY: v[5],
			DispX: v[6], DispPX: v[7],
			MuX: v[8], MuY: v[9],
		})
	}
	return t, nil
}
