package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"

	"github.com/mikaku-lang/armc/internal/compiler"
	"github.com/mikaku-lang/armc/internal/grammar"
)

func readSource(file string) ([]byte, error) {
	if file == "-" {
		return ioutil.ReadAll(os.Stdin)
	}
	return ioutil.ReadFile(file)
}

type buildConfig struct {
	Output string `yaml:"output"`
}

func readBuildConfig(path string) buildConfig {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return buildConfig{}
	}

	var cfg buildConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		fmt.Printf("error reading %s: %s\n", path, err)
		os.Exit(1)
	}
	return cfg
}

func main() {
	app := &cli.App{
		Name:  "armc",
		Usage: "compile a toy C-like language to 32-bit ARM assembly",
		ExitErrHandler: func(context *cli.Context, err error) {
			log.Fatalf("error with armc: %v", err)
		},
		Commands: []*cli.Command{
			{
				Name:      "build",
				Usage:     "compile a source file to ARM assembly",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output",
						Usage: "write assembly here instead of stdout",
					},
					&cli.BoolFlag{
						Name:  "dump-ast",
						Usage: "print the parsed AST to stderr before compiling",
						Value: false,
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to the armc.yaml build config",
						Value: "armc.yaml",
					},
				},
				Action: func(c *cli.Context) error {
					file := c.Args().First()
					if file == "" {
						fmt.Println("no source file provided")
						os.Exit(1)
					}

					source, err := readSource(file)
					if err != nil {
						fmt.Printf("error reading %s: %s\n", file, err)
						os.Exit(1)
					}

					if c.Bool("dump-ast") {
						program, err := grammar.Parse(string(source))
						if err != nil {
							tracerr.PrintSourceColor(err)
							os.Exit(1)
						}
						fmt.Fprintln(os.Stderr, repr.String(program))
					}

					out := c.String("output")
					if out == "" {
						out = readBuildConfig(c.String("config")).Output
					}

					var w *os.File
					if out == "" || out == "-" {
						w = os.Stdout
					} else {
						w, err = os.Create(out)
						if err != nil {
							fmt.Printf("error creating %s: %s\n", out, err)
							os.Exit(1)
						}
						defer w.Close()
					}

					if err := compiler.Compile(string(source), w); err != nil {
						tracerr.PrintSourceColor(err)
						os.Exit(1)
					}

					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("error with armc: %v", err)
	}
}
