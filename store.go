package openft

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const (
	sqlUpsertDrawables = `INSERT INTO drawables (id, package, name, kind, contribution, variant, mapping, texture_key, src_x, src_y, src_w, src_h, offset_x, offset_y, width, height, size_x, size_y, size_z, flip, multistorey)
	VALUES (:id, :package, :name, :kind, :contribution, :variant, :mapping, :texture_key, :src_x, :src_y, :src_w, :src_h, :offset_x, :offset_y, :width, :height, :size_x, :size_y, :size_z, :flip, :multistorey)
	ON CONFLICT (id) DO UPDATE SET package=EXCLUDED.package, name=EXCLUDED.name, kind=EXCLUDED.kind, contribution=EXCLUDED.contribution, variant=EXCLUDED.variant, mapping=EXCLUDED.mapping, texture_key=EXCLUDED.texture_key, src_x=EXCLUDED.src_x, src_y=EXCLUDED.src_y, src_w=EXCLUDED.src_w, src_h=EXCLUDED.src_h, offset_x=EXCLUDED.offset_x, offset_y=EXCLUDED.offset_y, width=EXCLUDED.width, height=EXCLUDED.height, size_x=EXCLUDED.size_x, size_y=EXCLUDED.size_y, size_z=EXCLUDED.size_z, flip=EXCLUDED.flip, multistorey=EXCLUDED.multistorey;`
	sqlSelectDrawables = `SELECT * FROM drawables`

	storeBatchSize = 200
)

// CatalogIndex is an on disk (sqlite) index of a catalog so tools can list
// & search drawables without loading every plugin again.
//
// It holds the catalog only; map state is never written.
type CatalogIndex struct {
	filename string
	db       *sqlx.DB
}

// OpenCatalogIndex given it's filename (database file) on disk.
// Will create if it doesn't exist.
func OpenCatalogIndex(fname string) (*CatalogIndex, error) {
	db, err := sqlx.Open("sqlite3", fname)
	if err != nil {
		return nil, err
	}

	idx := &CatalogIndex{db: db, filename: fname}
	return idx, idx.init()
}

// Filename returns the path to the index on disk
func (i *CatalogIndex) Filename() string {
	return i.filename
}

// Close the underlying database
func (i *CatalogIndex) Close() error {
	return i.db.Close()
}

// Put writes every entry of `doc`, replacing entries with the same id, in
// a single transaction.
func (i *CatalogIndex) Put(doc *CatalogDocument) error {
	if len(doc.Entries) == 0 {
		return nil
	}

	rows := make([]dbDrawable, len(doc.Entries))
	for n, e := range doc.Entries {
		rows[n] = newDBDrawable(e)
	}

	txn, err := i.db.Beginx()
	if err != nil {
		return err
	}

	// batches keep us under sqlite's limit on bound variables
	for start := 0; start < len(rows); start += storeBatchSize {
		end := start + storeBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		_, err = txn.NamedExec(sqlUpsertDrawables, rows[start:end])
		if err != nil {
			txn.Rollback()
			return errors.Wrap(err, "writing drawables")
		}
	}

	return txn.Commit()
}

// ByPackage returns the entries of one package ordered by id
func (i *CatalogIndex) ByPackage(title string) ([]EntryDocument, error) {
	rows := []dbDrawable{}
	err := i.db.Select(&rows, sqlSelectDrawables+` WHERE package=? ORDER BY id;`, title)
	if err != nil {
		return nil, err
	}
	return toEntries(rows), nil
}

// ByTexture returns the entries drawn from the texture with the given key
func (i *CatalogIndex) ByTexture(key string) ([]EntryDocument, error) {
	rows := []dbDrawable{}
	err := i.db.Select(&rows, sqlSelectDrawables+` WHERE texture_key=? ORDER BY id;`, key)
	if err != nil {
		return nil, err
	}
	return toEntries(rows), nil
}

// Count returns the number of entries held
func (i *CatalogIndex) Count() (int, error) {
	var n int
	err := i.db.Get(&n, `SELECT count(*) FROM drawables;`)
	return n, err
}

// init creates our table if it doesn't exist
func (i *CatalogIndex) init() error {
	createDrawables := `CREATE TABLE IF NOT EXISTS drawables(
		id INTEGER PRIMARY KEY,
		package TEXT NOT NULL,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		contribution INTEGER NOT NULL,
		variant INTEGER NOT NULL,
		mapping INTEGER NOT NULL,
		texture_key TEXT NOT NULL,
		src_x INTEGER NOT NULL,
		src_y INTEGER NOT NULL,
		src_w INTEGER NOT NULL,
		src_h INTEGER NOT NULL,
		offset_x INTEGER NOT NULL,
		offset_y INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		size_x INTEGER NOT NULL,
		size_y INTEGER NOT NULL,
		size_z INTEGER NOT NULL,
		flip BOOLEAN NOT NULL,
		multistorey BOOLEAN NOT NULL
	    );`
	_, err := i.db.Exec(createDrawables)
	if err != nil {
		return err
	}

	_, err = i.db.Exec(`CREATE INDEX IF NOT EXISTS drawables_package ON drawables (package);`)
	return err
}

// dbDrawable is a single row of the drawables table
type dbDrawable struct {
	ID           int    `db:"id"`
	Package      string `db:"package"`
	Name         string `db:"name"`
	Kind         string `db:"kind"`
	Contribution int    `db:"contribution"`
	Variant      int    `db:"variant"`
	Mapping      int    `db:"mapping"`
	TextureKey   string `db:"texture_key"`
	SrcX         int    `db:"src_x"`
	SrcY         int    `db:"src_y"`
	SrcW         int    `db:"src_w"`
	SrcH         int    `db:"src_h"`
	OffsetX      int    `db:"offset_x"`
	OffsetY      int    `db:"offset_y"`
	Width        int    `db:"width"`
	Height       int    `db:"height"`
	SizeX        int    `db:"size_x"`
	SizeY        int    `db:"size_y"`
	SizeZ        int    `db:"size_z"`
	Flip         bool   `db:"flip"`
	Multistorey  bool   `db:"multistorey"`
}

// newDBDrawable flattens an entry into a row
func newDBDrawable(e EntryDocument) dbDrawable {
	return dbDrawable{
		ID:           e.ID,
		Package:      e.Package,
		Name:         e.Name,
		Kind:         e.Kind,
		Contribution: e.Contribution,
		Variant:      e.Variant,
		Mapping:      e.Mapping,
		TextureKey:   e.TextureKey,
		SrcX:         e.Source.X,
		SrcY:         e.Source.Y,
		SrcW:         e.Source.W,
		SrcH:         e.Source.H,
		OffsetX:      e.OffsetX,
		OffsetY:      e.OffsetY,
		Width:        e.Width,
		Height:       e.Height,
		SizeX:        e.Size.X,
		SizeY:        e.Size.Y,
		SizeZ:        e.Size.Z,
		Flip:         e.Flip,
		Multistorey:  e.Multistorey,
	}
}

func toEntries(rows []dbDrawable) []EntryDocument {
	out := make([]EntryDocument, len(rows))
	for n, r := range rows {
		out[n] = EntryDocument{
			ID:           r.ID,
			Package:      r.Package,
			Name:         r.Name,
			Kind:         r.Kind,
			Contribution: r.Contribution,
			Variant:      r.Variant,
			Mapping:      r.Mapping,
			TextureKey:   r.TextureKey,
			Source:       Rect{X: r.SrcX, Y: r.SrcY, W: r.SrcW, H: r.SrcH},
			OffsetX:      r.OffsetX,
			OffsetY:      r.OffsetY,
			Width:        r.Width,
			Height:       r.Height,
			Size:         Tile{X: r.SizeX, Y: r.SizeY, Z: r.SizeZ},
			Flip:         r.Flip,
			Multistorey:  r.Multistorey,
		}
	}
	return out
}
