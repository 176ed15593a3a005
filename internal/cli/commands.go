package cli

import (
	"flag"
	"fmt"
	"path/filepath"

	"go.uber.org/multierr"

	"schema-generator/internal/config"
	"schema-generator/internal/gen"
	"schema-generator/internal/source"
)

// genCommand generates Go types or a declaration document.
type genCommand struct {
	html bool
	out  string
}

func (c *genCommand) register(fs *flag.FlagSet, common *commonFlags) {
	fs.BoolVar(&c.html, "html", false, "Read INPUT as the HTML reference page.")
	fs.StringVar(&c.out, "o", "", "Output file. (default stdout)")
	fs.StringVar(&common.format, "format", "", "Output format: 'go' or 'yaml'. (default from config, else go)")
}

func (c *genCommand) run(env *environment) error {
	set, err := env.readResources(c.html)
	if err != nil {
		return err
	}

	gc := env.config.GeneratorConfig()
	if c.out != "" {
		gc.Filename = filepath.Base(c.out)
		gc.OutputDir = filepath.Dir(c.out)
	}

	generator := gen.NewGenerator(gc)

	doc, err := env.pipeline(generator).Run(set)
	if err != nil {
		return err
	}

	var content []byte

	switch env.config.Format {
	case config.FormatYAML:
		content, err = source.MarshalDocument(doc)
	default:
		var file *gen.GeneratedFile

		file, err = generator.Generate(doc)
		if err == nil {
			content = file.Content
		}
	}

	if err != nil {
		return err
	}

	return env.write(c.out, content)
}

// checkCommand reports every problem of the input at once.
type checkCommand struct {
	html bool
}

func (c *checkCommand) register(fs *flag.FlagSet, _ *commonFlags) {
	fs.BoolVar(&c.html, "html", false, "Read INPUT as the HTML reference page.")
}

func (c *checkCommand) run(env *environment) error {
	set, err := env.readResources(c.html)
	if err != nil {
		return err
	}

	generator := gen.NewGenerator(env.config.GeneratorConfig())
	diags := env.pipeline(generator).Check(set)

	fmt.Fprint(env.Stdout, diags.Format())

	if err := diags.Err(); err != nil {
		return &ExitError{
			Code:    codeFailure,
			Message: fmt.Sprintf("check failed with %d error(s)", len(multierr.Errors(err))),
		}
	}

	fmt.Fprintf(env.Stdout, "ok: %d resources\n", set.Len())

	return nil
}

// scrapeCommand converts the HTML reference page to a resource document.
type scrapeCommand struct {
	out string
}

func (c *scrapeCommand) register(fs *flag.FlagSet, _ *commonFlags) {
	fs.StringVar(&c.out, "o", "", "Output file. (default stdout)")
}

func (c *scrapeCommand) run(env *environment) error {
	set, err := env.readResources(true)
	if err != nil {
		return err
	}

	data, err := source.Marshal(set)
	if err != nil {
		return err
	}

	return env.write(c.out, data)
}
