package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/oscarcs/openft"
)

const desc = `Loads every plugin package under a plugin root & turns their contributions into drawables.

Each sub directory of the plugin root is a package with a plugin.xml manifest. Packages that fail to
load are reported & skipped. The resulting catalog can be written as JSON (for tooling) or into a sqlite
index, and entity types can be test placed on an empty map.`

var cli struct {
	Config  string `short:"c" help:"yaml config file"`
	Plugins string `short:"p" help:"plugin root directory (overrides config)"`
	Workers int    `short:"w" help:"max packages parsed at once (overrides config)"`

	Catalog struct {
		JSON  string `help:"write the catalog as JSON to this file ('-' for stdout)"`
		Index string `help:"write the catalog into this sqlite index (created if needed)"`
	} `cmd:"" help:"list the drawables every plugin provides"`

	Place struct {
		Type int `arg:"" help:"entity type id (as listed by 'catalog')"`
		X    int `arg:"" help:"anchor x"`
		Y    int `arg:"" help:"anchor y"`
	} `cmd:"" help:"place an entity on an empty map & print the tiles it covers"`
}

func main() {
	ctx := kong.Parse(&cli, kong.Name("openft"), kong.Description(desc))

	cfg, err := config()
	if err != nil {
		panic(err)
	}

	cat, err := openft.LoadCatalog(context.Background(), cfg, openft.NewVariantCache(nil))
	if err != nil {
		panic(err)
	}

	switch strings.Fields(ctx.Command())[0] {
	case "catalog":
		err = catalog(cat)
	case "place":
		err = place(cfg, cat)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// config reads the config file (if given) & applies any overrides
func config() (*openft.Config, error) {
	cfg := openft.DefaultConfig()
	if cli.Config != "" {
		var err error
		cfg, err = openft.LoadConfig(cli.Config)
		if err != nil {
			return nil, err
		}
	}
	if cli.Plugins != "" {
		cfg.PluginRoot = cli.Plugins
	}
	if cli.Workers > 0 {
		cfg.Workers = cli.Workers
	}
	return cfg, nil
}

func catalog(cat *openft.Catalog) error {
	doc := cat.Document(0)

	for _, e := range doc.Entries {
		fmt.Printf("%4d %-16s %-20q %-16s %dx%dx%d %s\n", e.ID, e.Package, e.Name, e.Kind, e.Size.X, e.Size.Y, e.Size.Z, e.TextureKey)
	}
	fmt.Printf("%d drawables, %d contributions skipped\n", len(doc.Entries), cat.Skipped)

	switch cli.Catalog.JSON {
	case "":
	case "-":
		if err := doc.Encode(os.Stdout); err != nil {
			return err
		}
	default:
		f, err := os.Create(cli.Catalog.JSON)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := doc.Encode(f); err != nil {
			return err
		}
		fmt.Println("wrote", cli.Catalog.JSON)
	}

	if cli.Catalog.Index == "" {
		return nil
	}

	idx, err := openft.OpenCatalogIndex(cli.Catalog.Index)
	if err != nil {
		return err
	}
	defer idx.Close()

	err = idx.Put(doc)
	if err != nil {
		return err
	}

	n, err := idx.Count()
	if err != nil {
		return err
	}
	fmt.Printf("index %s holds %d drawables\n", idx.Filename(), n)
	return nil
}

func place(cfg *openft.Config, cat *openft.Catalog) error {
	m := openft.New(cfg)
	first := cat.Register(m)

	id := first + cli.Place.Type
	err := m.Fits(cli.Place.X, cli.Place.Y, id)
	if err != nil {
		return err
	}

	h, err := m.Place(cli.Place.X, cli.Place.Y, id, nil)
	if err != nil {
		return err
	}

	d, _ := m.EntityType(id)
	fmt.Printf("placed %q (%s) as entity %d\n", d.Name, d.TextureKey(), h)

	for y := cli.Place.Y; y >= 0 && y > cli.Place.Y-d.Size.Y-1; y-- {
		for x := cli.Place.X; x < m.Width && x < cli.Place.X+d.Size.X+1; x++ {
			_, _, offset, ok := m.EntityAt(x, y)
			if ok {
				fmt.Printf("(%d,%d) covered, offset %d,%d\n", x, y, offset.X, offset.Y)
			} else {
				fmt.Printf("(%d,%d) free\n", x, y)
			}
		}
	}
	return nil
}
