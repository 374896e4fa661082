package cli

import (
	"encoding/json"

	"github.com/urfave/cli/v2"

	"go.viam.com/planarkin/referenceframe"
)

// SchemaAction prints the JSON schema of arm model files.
func SchemaAction(c *cli.Context) error {
	out, err := json.MarshalIndent(referenceframe.ModelJSONSchema(), "", "  ")
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", out)
	return nil
}
