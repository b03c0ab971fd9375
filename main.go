package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"
)

// Build-time variables injected via ldflags.
var (
	Version        = "v0.0.0"
	CommitHash     = "dev"
	BuildTimestamp = "1970-01-01T00:00:00Z"
	Builder        = "unknown"
	GithubRepo     = "babs/mkico"
)

func versionString() string {
	return fmt.Sprintf("mkico %s-%s", Version, CommitHash)
}

func versionStringLong() string {
	return fmt.Sprintf("mkico %s-%s (built %s using %s)\nhttps://github.com/%s\n",
		Version, CommitHash, BuildTimestamp, Builder, GithubRepo)
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmsgprefix)
	log.SetPrefix("[mkico] ")

	showVersion := flag.Bool("version", false, "show version and exit")
	doUpdate := flag.Bool("update", false, "check and update to latest release")
	doInitConfig := flag.Bool("init-config", false, "write a default config file and exit")
	inspect := flag.String("inspect", "", "print the directory of an existing .ico file and exit")
	output := flag.String("output", "", "output file (env: MKICO_OUTPUT)")
	sizes := flag.String("sizes", "", "comma-separated sizes, e.g. 16,32,48,256 or 32x32 (env: MKICO_SIZES)")
	pattern := flag.String("pattern", "", "fill pattern: "+strings.Join(patternNames, ", ")+" (env: MKICO_PATTERN)")
	col := flag.String("color", "", "fill color #RRGGBB or #RRGGBBAA (env: MKICO_COLOR)")
	encoder := flag.String("encoder", "", "encoder: auto, library, manual (env: MKICO_ENCODER)")
	flag.Usage = func() {
		fmt.Print(versionStringLong())
		fmt.Fprintf(os.Stderr, "\nUsage: %s [options]\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Print(versionStringLong())
		return
	}

	if *doUpdate {
		if err := selfUpdate(); err != nil {
			log.Fatalf("Update failed: %v", err)
		}
		return
	}

	if *doInitConfig {
		if err := initConfig(); err != nil {
			log.Fatalf("Failed to write default config: %v", err)
		}
		fmt.Printf("Created default config at %s\n", configPath)
		return
	}

	if *inspect != "" {
		if err := inspectFile(*inspect); err != nil {
			log.Fatalf("Inspect failed: %v", err)
		}
		return
	}

	cfg := loadConfig()
	applyOverrides(&cfg, overrides{
		Output:  *output,
		Sizes:   *sizes,
		Pattern: *pattern,
		Color:   *col,
		Encoder: *encoder,
	})

	summary, err := run(cfg)
	if err != nil {
		log.Fatalf("Failed to create icon: %v", err)
	}
	fmt.Println(summary)
}

// run resolves cfg into an encoder, sizes and pattern, then writes the icon.
func run(cfg Config) (string, error) {
	sizes, err := parseSizes(cfg.Sizes)
	if err != nil {
		return "", err
	}

	var col *color.NRGBA
	if cfg.Color != "" {
		c, err := parseHexColor(cfg.Color)
		if err != nil {
			return "", err
		}
		col = &c
	}
	p, err := newPattern(cfg.Pattern, col)
	if err != nil {
		return "", err
	}

	enc, err := selectEncoder(cfg.Encoder)
	if err != nil {
		return "", err
	}

	n, err := generateIcon(enc, sizes, p, cfg.Output)
	if err != nil {
		return "", err
	}
	return formatSummary(cfg.Output, enc, p, sizes, n), nil
}

func inspectFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	f, err := parseICO(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Printf("%s: %d image(s)\n", path, f.Count)
	for i, img := range f.Images {
		fmt.Println(formatImageLine(i, img))
	}
	return nil
}

// overrides holds CLI flag values for config overrides.
type overrides struct {
	Output  string
	Sizes   string
	Pattern string
	Color   string
	Encoder string
}

// applyStringOverride applies a string override from env var and flag.
// Values are validated by run.
func applyStringOverride(target *string, envKey, flagVal string) {
	if v := os.Getenv(envKey); v != "" {
		*target = v
	}
	if flagVal != "" {
		*target = flagVal
	}
}

// applyOverrides applies env vars and flags to config. Priority: flag > env > config file.
func applyOverrides(cfg *Config, o overrides) {
	applyStringOverride(&cfg.Output, "MKICO_OUTPUT", o.Output)
	applyStringOverride(&cfg.Sizes, "MKICO_SIZES", o.Sizes)
	applyStringOverride(&cfg.Pattern, "MKICO_PATTERN", o.Pattern)
	applyStringOverride(&cfg.Color, "MKICO_COLOR", o.Color)
	applyStringOverride(&cfg.Encoder, "MKICO_ENCODER", o.Encoder)
}
