// internal/commands/root_test.go
package featcmp

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/featcmp/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const testPredictions = `y_true,y_pred,y_pred_proba,feature_set,run_name
1,1,0.9,fourier-only,r1
0,0,0.2,fourier-only,r1
1,0,0.4,fourier-only,r1
0,0,0.1,fourier-only,r1
1,1,0.8,baseline-only,r1
0,0,0.3,baseline-only,r1
1,0,0.45,baseline-only,r1
0,0,0.2,baseline-only,r1
`

func resetFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(flag *pflag.Flag) {
		_ = flag.Value.Set(flag.DefValue)
		flag.Changed = false
	})
}

// execute runs the root command with args against a temp config file and
// returns the combined output.
func execute(t *testing.T, configContent string, args ...string) (string, error) {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "featcmp.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	prevCfgFile := cfgFile
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		viper.SetConfigFile(prevCfgFile)
		rootCmd.SetArgs([]string{})
		_ = logging.Close()
	})
	for _, c := range []*cobra.Command{rootCmd, reportCmd, viewCmd, showConfigCmd} {
		resetFlags(c.Flags())
	}
	resetFlags(rootCmd.PersistentFlags())

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"--config", configPath}, args...))
	_, err := rootCmd.ExecuteC()
	return buf.String(), err
}

func writePredictions(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preds.csv")
	if err := os.WriteFile(path, []byte(testPredictions), 0o644); err != nil {
		t.Fatalf("write predictions: %v", err)
	}
	return path
}

// TestRootCmd verifies running the root command with an invalid subcommand reports an error.
func TestRootCmd(t *testing.T) {
	b := new(bytes.Buffer)
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)

	rootCmd.SetArgs([]string{"nonexistent"})
	t.Cleanup(func() { rootCmd.SetArgs([]string{}) })
	_, err := rootCmd.ExecuteC()

	if err == nil {
		t.Error("Expected an error for a nonexistent command, but got none")
	}

	expected := "unknown command \"nonexistent\" for \"featcmp\""
	if !strings.Contains(b.String(), expected) {
		t.Errorf("Expected output to contain '%s', but got '%s'", expected, b.String())
	}
}

func TestReportCommand(t *testing.T) {
	input := writePredictions(t)

	out, err := execute(t, "{}", "report", "-f", input, "-t", "-m", "-n", "2")
	if err != nil {
		t.Fatalf("report error: %v\n%s", err, out)
	}
	for _, want := range []string{"COMBINED", "GROUPED", "0.750", "\\begin{tabular}", "\\textBlue{"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if currentConfig == nil || currentConfig.NumDecimals != 2 || !currentConfig.ToLaTeX {
		t.Fatalf("expected flag values to flow into config: %+v", currentConfig)
	}
}

func TestReportCommandReadsConfigFile(t *testing.T) {
	input := writePredictions(t)

	out, err := execute(t, "input: "+input+"\ntoLatex: true\nnumDecimals: 4\n", "report")
	if err != nil {
		t.Fatalf("report error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "0.7500") {
		t.Fatalf("expected 4-decimal LaTeX from config file:\n%s", out)
	}
}

func TestReportCommandRejectsHighlightWithoutLaTeX(t *testing.T) {
	input := writePredictions(t)

	out, err := execute(t, "{}", "report", "-f", input, "-m")
	if err == nil {
		t.Fatalf("expected validation error, got output:\n%s", out)
	}
	if strings.Contains(out, "COMBINED") {
		t.Fatalf("expected no report output on error:\n%s", out)
	}
}

func TestReportCommandMissingFile(t *testing.T) {
	out, err := execute(t, "{}", "report", "-f", filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil {
		t.Fatalf("expected error for missing input, got output:\n%s", out)
	}
}

func TestShowConfigCommandOutput(t *testing.T) {
	out, err := execute(t, "numDecimals: 5\n", "--debug", "show", "config")
	if err != nil {
		t.Fatalf("ExecuteC error: %v", err)
	}
	if !strings.Contains(out, "Config file: ") {
		t.Fatalf("expected config file path in output, got %s", out)
	}
	if !strings.Contains(out, "Debug:             true") {
		t.Fatalf("expected debug in output, got %s", out)
	}
	if !strings.Contains(out, "Num Decimals:      5") {
		t.Fatalf("expected numDecimals from file, got %s", out)
	}
}

func TestListCommands(t *testing.T) {
	out, err := execute(t, "{}", "list", "commands")
	if err != nil {
		t.Fatalf("ExecuteC error: %v", err)
	}
	for _, want := range []string{"featcmp commands:", "featcmp report", "featcmp view", "featcmp show config", "featcmp list commands"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "completion") {
		t.Fatalf("completion command should be filtered:\n%s", out)
	}
}

func TestReportCommandPreset(t *testing.T) {
	input := writePredictions(t)

	out, err := execute(t, "{}", "--preset", "paper-precise", "report", "-f", input)
	if err != nil {
		t.Fatalf("report error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "\\textBlue{") || !strings.Contains(out, "0.7500") {
		t.Fatalf("expected highlighted 4-decimal LaTeX from preset:\n%s", out)
	}

	out, err = execute(t, "{}", "--preset", "poster", "report", "-f", input)
	if err == nil {
		t.Fatalf("expected error for unknown preset, got:\n%s", out)
	}
}
