package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/danmuck/modelcodec/internal/codec/tagged"
	"github.com/danmuck/modelcodec/internal/logging"
	"github.com/danmuck/modelcodec/internal/model"
	"github.com/danmuck/modelcodec/internal/models"
	"github.com/danmuck/modelcodec/internal/transcode"
	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a modelctl TOML config, used by serve",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "override the log level (trace, debug, info, warn, error)",
	}
	kindFlag = cli.StringFlag{
		Name:  "kind",
		Usage: "registered model kind",
		Value: models.KindResponse,
	}
	formatFlag = cli.StringFlag{
		Name:  "format",
		Usage: "codec format: literal, json or binary",
	}
	fromFlag = cli.StringFlag{
		Name:  "from",
		Usage: "input codec format",
		Value: "literal",
	}
	toFlag = cli.StringFlag{
		Name:  "to",
		Usage: "output codec format",
		Value: "json",
	}
	inFlag = cli.StringFlag{
		Name:  "in",
		Usage: "input file, stdin when empty",
	}
	outFlag = cli.StringFlag{
		Name:  "out",
		Usage: "output file, stdout when empty",
	}
	hexFlag = cli.BoolFlag{
		Name:  "hex",
		Usage: "write output as hex",
	}
	inHexFlag = cli.BoolFlag{
		Name:  "in-hex",
		Usage: "read input as hex",
	}
)

func main() {
	if err := run(os.Args, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "modelctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	svc := transcode.NewService(models.Catalog())

	app := cli.NewApp()
	app.Name = "modelctl"
	app.Usage = "encode, decode and transcode registered models"
	app.Version = "v0.1.0"
	app.Writer = stdout
	app.Flags = []cli.Flag{configFlag, logLevelFlag}
	app.Before = func(c *cli.Context) error {
		logging.ConfigureRuntime()
		if v := c.GlobalString(logLevelFlag.Name); v != "" {
			lvl, ok := logging.ParseLevel(v)
			if !ok {
				return fmt.Errorf("unknown log level %q", v)
			}
			zerolog.SetGlobalLevel(lvl)
		}
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:   "formats",
			Usage:  "list codec formats",
			Action: formatsCmd,
		},
		{
			Name:   "kinds",
			Usage:  "list registered kinds and their fields",
			Action: func(c *cli.Context) error { return kindsCmd(c, svc) },
		},
		{
			Name:   "sample",
			Usage:  "encode the sample instance of a kind",
			Flags:  []cli.Flag{kindFlag, formatFlag, outFlag, hexFlag},
			Action: func(c *cli.Context) error { return sampleCmd(c, svc) },
		},
		{
			Name:   "transcode",
			Usage:  "decode input with one format and encode it with another",
			Flags:  []cli.Flag{kindFlag, fromFlag, toFlag, inFlag, inHexFlag, outFlag, hexFlag},
			Action: func(c *cli.Context) error { return transcodeCmd(c, svc, stdin) },
		},
		{
			Name:   "inspect",
			Usage:  "decode input and dump the resulting value",
			Flags:  []cli.Flag{kindFlag, formatFlag, inFlag, inHexFlag},
			Action: func(c *cli.Context) error { return inspectCmd(c, svc, stdin) },
		},
		{
			Name:   "serve",
			Usage:  "run the HTTP transcode service",
			Action: func(c *cli.Context) error { return serveCmd(c, svc) },
		},
	}
	return app.Run(args)
}

func formatsCmd(c *cli.Context) error {
	w := c.App.Writer
	for _, name := range model.Formats() {
		fmt.Fprintln(w, name)
	}
	fmt.Fprintf(w, "host byte order: %s (binary is always big-endian)\n", tagged.HostByteOrder())
	return nil
}

func kindsCmd(c *cli.Context, svc *transcode.Service) error {
	w := c.App.Writer
	for _, e := range svc.Catalog().List() {
		fmt.Fprintf(w, "%-10s %-8s %s\n", e.ID, e.DefaultFormat, strings.Join(e.Fields, ","))
	}
	return nil
}

func sampleCmd(c *cli.Context, svc *transcode.Service) error {
	kind := c.String(kindFlag.Name)
	format, err := formatOrDefault(svc, kind, c.String(formatFlag.Name))
	if err != nil {
		return err
	}
	out, err := svc.Sample(kind, format)
	if err != nil {
		return err
	}
	return writeOutput(c, out)
}

func transcodeCmd(c *cli.Context, svc *transcode.Service, stdin io.Reader) error {
	data, err := readInput(c, stdin)
	if err != nil {
		return err
	}
	out, err := svc.Transcode(c.String(kindFlag.Name), c.String(fromFlag.Name), c.String(toFlag.Name), data)
	if err != nil {
		return err
	}
	return writeOutput(c, out)
}

func inspectCmd(c *cli.Context, svc *transcode.Service, stdin io.Reader) error {
	kind := c.String(kindFlag.Name)
	format, err := formatOrDefault(svc, kind, c.String(formatFlag.Name))
	if err != nil {
		return err
	}
	data, err := readInput(c, stdin)
	if err != nil {
		return err
	}
	v, err := svc.Decode(kind, format, data)
	if err != nil {
		return err
	}
	dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
	dumper.Fdump(c.App.Writer, v)
	return nil
}

func serveCmd(c *cli.Context, svc *transcode.Service) error {
	cfg, err := loadServeConfig(c.GlobalString(configFlag.Name))
	if err != nil {
		return err
	}
	if cfg.HasLevel && c.GlobalString(logLevelFlag.Name) == "" {
		zerolog.SetGlobalLevel(cfg.LogLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := transcode.NewServer(cfg.Transcode, svc)
	srv.RegisterRoutes()
	if err := srv.Serve(ctx); err != nil {
		return err
	}
	log.Info().Str("id", cfg.Transcode.ID).Msg("transcode server stopped")
	return nil
}

// formatOrDefault falls back to the kind's own default format.
func formatOrDefault(svc *transcode.Service, kind, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return format, nil
	}
	k, err := svc.Catalog().Resolve(kind)
	if err != nil {
		return "", err
	}
	return k.DefaultFormat(), nil
}

func readInput(c *cli.Context, stdin io.Reader) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path := c.String(inFlag.Name); path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if c.Bool(inHexFlag.Name) {
		decoded, err := hex.DecodeString(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return decoded, nil
	}
	return data, nil
}

func writeOutput(c *cli.Context, out []byte) error {
	if c.Bool(hexFlag.Name) {
		out = []byte(hex.EncodeToString(out) + "\n")
	}
	if path := c.String(outFlag.Name); path != "" {
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
	_, err := c.App.Writer.Write(out)
	return err
}
