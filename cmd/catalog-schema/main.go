package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/invopop/jsonschema"

	"github.com/oscarcs/openft"
)

const desc = `Writes the JSON schema of the catalog documents written by 'openft catalog --json'.`

var cli struct {
	Output string `short:"o" help:"where to write the schema (default: stdout)"`
}

func main() {
	kong.Parse(&cli, kong.Name("catalog-schema"), kong.Description(desc))

	data, err := json.MarshalIndent(buildSchema(), "", "  ")
	if err != nil {
		panic(err)
	}
	data = append(data, '\n')

	if cli.Output == "" {
		os.Stdout.Write(data)
		return
	}

	err = os.WriteFile(cli.Output, data, 0644)
	if err != nil {
		panic(err)
	}
	fmt.Println("wrote", cli.Output)
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	schema := reflector.Reflect(&openft.CatalogDocument{})
	schema.Title = "OpenFT Catalog"
	schema.Description = "Drawables built from plugin packages, in entity type order."
	return schema
}
