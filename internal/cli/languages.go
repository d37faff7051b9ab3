package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/indentfold/internal/ui/pretty"
	"github.com/yaklabco/indentfold/pkg/config"
	"github.com/yaklabco/indentfold/pkg/fsutil"
	"github.com/yaklabco/indentfold/pkg/langdetect"
)

type languagesFlags struct {
	format string
}

const formatJSON = "json"

// Sources of a resolved setting.
const (
	sourceDefault  = "default"
	sourceOverride = "override"
	sourceDetected = "detected"
)

// languageInfo represents one resolved language in JSON output.
type languageInfo struct {
	Language         string `json:"language"`
	File             string `json:"file,omitempty"`
	TabSize          int    `json:"tabSize"`
	MinimumRangeSize int    `json:"minimumRangeSize"`
	Source           string `json:"source"`
}

func newLanguagesCommand() *cobra.Command {
	flags := &languagesFlags{}

	cmd := &cobra.Command{
		Use:   "languages [files...]",
		Short: "Show the fold settings each language resolves to",
		Long: `Show the tab size and minimum range size used for each language.

Without arguments, lists the top-level defaults and every per-language
override in the merged configuration. With file arguments, detects each
file's language and shows the settings that would be used to fold it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.format != "text" && flags.format != formatJSON {
				return &UsageError{Err: fmt.Errorf("invalid format %q: must be text or json", flags.format)}
			}

			loaded, err := loadConfig(cmd, &config.Config{})
			if err != nil {
				return err
			}

			var infos []languageInfo
			if len(args) == 0 {
				infos = configuredLanguages(loaded.config)
			} else {
				infos, err = detectedLanguages(cmd, loaded.config, args)
				if err != nil {
					return err
				}
			}

			if flags.format == formatJSON {
				return outputLanguagesJSON(cmd.OutOrStdout(), infos)
			}
			return outputLanguagesTable(cmd, infos, len(args) > 0)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

// configuredLanguages lists the defaults row followed by every override,
// sorted by name.
func configuredLanguages(cfg *config.Config) []languageInfo {
	defaults := cfg.Resolve("")
	infos := []languageInfo{{
		Language:         "*",
		TabSize:          defaults.TabSize,
		MinimumRangeSize: defaults.MinimumRangeSize,
		Source:           sourceDefault,
	}}

	names := make([]string, 0, len(cfg.Languages))
	for name := range cfg.Languages {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		settings := cfg.Resolve(name)
		infos = append(infos, languageInfo{
			Language:         name,
			TabSize:          settings.TabSize,
			MinimumRangeSize: settings.MinimumRangeSize,
			Source:           sourceOverride,
		})
	}

	return infos
}

// detectedLanguages resolves settings for each named file.
func detectedLanguages(cmd *cobra.Command, cfg *config.Config, paths []string) ([]languageInfo, error) {
	ctx := commandContext(cmd)

	infos := make([]languageInfo, 0, len(paths))
	for _, path := range paths {
		content, _, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		lang := langdetect.DetectFile(path, content)
		settings := cfg.Resolve(lang)

		source := sourceDetected
		if hasOverride(cfg, lang) {
			source = sourceOverride
		}

		infos = append(infos, languageInfo{
			Language:         lang,
			File:             path,
			TabSize:          settings.TabSize,
			MinimumRangeSize: settings.MinimumRangeSize,
			Source:           source,
		})
	}

	return infos, nil
}

func outputLanguagesTable(cmd *cobra.Command, infos []languageInfo, withFiles bool) error {
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))

	headers := []string{"Language", "Tab", "Min Size", "Source"}
	numeric := map[int]bool{1: true, 2: true}
	if withFiles {
		headers = append([]string{"File"}, headers...)
		numeric = map[int]bool{2: true, 3: true}
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		row := []string{
			info.Language,
			strconv.Itoa(info.TabSize),
			strconv.Itoa(info.MinimumRangeSize),
			info.Source,
		}
		if withFiles {
			row = append([]string{info.File}, row...)
		}
		rows = append(rows, row)
	}

	_, err := fmt.Fprint(out, styles.RenderTable(headers, rows, numeric, 0))
	if err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

// outputLanguagesJSON outputs resolved languages as a JSON array.
func outputLanguagesJSON(w io.Writer, infos []languageInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding languages: %w", err)
	}
	return nil
}

func hasOverride(cfg *config.Config, lang string) bool {
	for name := range cfg.Languages {
		if strings.EqualFold(name, lang) {
			return true
		}
	}
	return false
}
