// Package blockstore persists raster datasets as native pixel blocks
// in an SQLite file, one BLOB per (band, block) plus an MBTiles-style
// metadata table. It plugs into the raster engine as a storage driver.
package blockstore

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/geocodex/go-raster/internal/grid"
	"github.com/geocodex/go-raster/raster"
)

// Store is an SQLite-backed raster block store. Blocks are sparse:
// never-written blocks read back as zero.
type Store struct {
	db *sql.DB
	ds *raster.Dataset
}

// Option configures store creation.
type Option func(*options)

type options struct {
	blockW, blockH int
}

// BlockSize sets the natural block size of a created store. The
// default is 256x256.
func BlockSize(w, h int) Option {
	return func(o *options) {
		if w > 0 && h > 0 {
			o.blockW, o.blockH = w, h
		}
	}
}

// Create creates a new block store file and its schema. An existing
// file at path is reused; its tables are created if missing.
func Create(path string, width, height, bands int, dt raster.DataType, opts ...Option) (*Store, error) {
	if width < 1 || height < 1 || bands < 1 {
		return nil, fmt.Errorf("invalid raster geometry %dx%d, %d bands", width, height, bands)
	}
	if !dt.Valid() {
		return nil, fmt.Errorf("invalid data type %v", dt)
	}
	o := options{blockW: 256, blockH: 256}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	meta := map[string]string{
		"identifier":   uuid.New().String(),
		"width":        strconv.Itoa(width),
		"height":       strconv.Itoa(height),
		"bands":        strconv.Itoa(bands),
		"data_type":    dt.String(),
		"block_width":  strconv.Itoa(o.blockW),
		"block_height": strconv.Itoa(o.blockH),
	}
	if err := writeMetadata(db, meta); err != nil {
		db.Close()
		return nil, err
	}

	return newStore(db, meta)
}

// Open opens an existing block store file.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	meta, err := readMetadata(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return newStore(db, meta)
}

func newStore(db *sql.DB, meta map[string]string) (*Store, error) {
	geom, err := parseMetadata(meta)
	if err != nil {
		db.Close()
		return nil, err
	}

	drivers := make([]raster.Driver, geom.bands)
	for i := range drivers {
		drivers[i] = &bandDriver{
			db:   db,
			band: i + 1,
			g:    grid.Grid{Width: geom.width, Height: geom.height, BlockW: geom.blockW, BlockH: geom.blockH},
			dt:   geom.dt,
		}
	}
	ds, err := raster.NewDataset(meta["identifier"], drivers)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, ds: ds}, nil
}

// Dataset returns the dataset backed by this store. The store must
// stay open for the duration of any I/O through it.
func (s *Store) Dataset() *raster.Dataset {
	return s.ds
}

// Close closes the underlying database. Bands handed out from the
// store's dataset become invalid.
func (s *Store) Close() error {
	return s.db.Close()
}

type geometry struct {
	width, height  int
	bands          int
	blockW, blockH int
	dt             raster.DataType
}

func parseMetadata(meta map[string]string) (geometry, error) {
	var g geometry
	var err error
	for _, f := range []struct {
		key string
		dst *int
	}{
		{"width", &g.width},
		{"height", &g.height},
		{"bands", &g.bands},
		{"block_width", &g.blockW},
		{"block_height", &g.blockH},
	} {
		*f.dst, err = strconv.Atoi(meta[f.key])
		if err != nil || *f.dst < 1 {
			return g, fmt.Errorf("invalid metadata %s=%q", f.key, meta[f.key])
		}
	}
	g.dt, err = raster.ParseDataType(meta["data_type"])
	if err != nil {
		return g, fmt.Errorf("invalid metadata data_type: %w", err)
	}
	return g, nil
}

func createSchema(db *sql.DB) error {
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS metadata (
			name TEXT PRIMARY KEY,
			value TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS blocks (
			band INTEGER NOT NULL,
			block_x INTEGER NOT NULL,
			block_y INTEGER NOT NULL,
			data BLOB NOT NULL,
			PRIMARY KEY (band, block_x, block_y)
		)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

func writeMetadata(db *sql.DB, meta map[string]string) error {
	stmt, err := db.Prepare("INSERT OR REPLACE INTO metadata (name, value) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("preparing metadata insert: %w", err)
	}
	defer stmt.Close()
	for name, value := range meta {
		if _, err := stmt.Exec(name, value); err != nil {
			return fmt.Errorf("writing metadata %s: %w", name, err)
		}
	}
	return nil
}

func readMetadata(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scanning metadata: %w", err)
		}
		meta[name] = value
	}
	return meta, rows.Err()
}

// bandDriver serves one band's blocks from the shared database.
type bandDriver struct {
	db   *sql.DB
	band int
	g    grid.Grid
	dt   raster.DataType
}

func (d *bandDriver) RasterSize() (int, int) { return d.g.Width, d.g.Height }
func (d *bandDriver) BlockSize() (int, int)  { return d.g.BlockW, d.g.BlockH }
func (d *bandDriver) DataType() raster.DataType {
	return d.dt
}

func (d *bandDriver) ReadBlock(bx, by int, dst []byte) error {
	var data []byte
	err := d.db.QueryRow(
		"SELECT data FROM blocks WHERE band = ? AND block_x = ? AND block_y = ?",
		d.band, bx, by).Scan(&data)
	if err == sql.ErrNoRows {
		clear(dst)
		return nil
	}
	if err != nil {
		return fmt.Errorf("querying block (%d,%d): %w", bx, by, err)
	}
	if len(data) != len(dst) {
		return fmt.Errorf("block (%d,%d) holds %d bytes, expected %d", bx, by, len(data), len(dst))
	}
	copy(dst, data)
	return nil
}

func (d *bandDriver) WriteBlock(bx, by int, src []byte) error {
	stored := make([]byte, len(src))
	copy(stored, src)
	_, err := d.db.Exec(
		"INSERT OR REPLACE INTO blocks (band, block_x, block_y, data) VALUES (?, ?, ?, ?)",
		d.band, bx, by, stored)
	if err != nil {
		return fmt.Errorf("storing block (%d,%d): %w", bx, by, err)
	}
	return nil
}
