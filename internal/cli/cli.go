// Package cli wires flags, the optional config file and the prediction
// pipeline into a cobra command.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Brownie44l1/signscan/internal/config"
	"github.com/Brownie44l1/signscan/internal/failure"
	"github.com/Brownie44l1/signscan/internal/model"
)

// LoaderFunc builds a predictor for the model at path.
type LoaderFunc func(path string, opts model.ONNXOptions, log *logrus.Entry) (model.Predictor, error)

func loadONNX(path string, opts model.ONNXOptions, log *logrus.Entry) (model.Predictor, error) {
	return model.LoadONNX(path, opts, log)
}

type options struct {
	loader   LoaderFunc
	scanRoot string
}

// Option customizes the root command.
type Option func(*options)

// WithLoader replaces the ONNX loader.
func WithLoader(loader LoaderFunc) Option {
	return func(o *options) { o.loader = loader }
}

// WithScanRoot sets where the fallback model scan starts.
func WithScanRoot(root string) Option {
	return func(o *options) { o.scanRoot = root }
}

// NewRootCmd creates the signscan command.
func NewRootCmd(opts ...Option) *cobra.Command {
	o := &options{loader: loadONNX}
	for _, opt := range opts {
		opt(o)
	}
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "signscan [flags] IMAGE",
		Short: "Classify a single image with a pre-trained model",
		Long: `signscan loads an ONNX image classifier, converts IMAGE to a 64x64
grayscale tensor and prints the predicted class. The result is printed
between RESULT_START and RESULT_END as a single JSON line.`,
		Args:          exactlyOneImage,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(v, cmd.Flags(), args[0])
			if err != nil {
				return err
			}
			return Run(cmd.OutOrStdout(), cfg, o)
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "Read flag values from a YAML, JSON or TOML file")
	flags.String("model", config.DefaultModelPath, "Path to the ONNX model, probed first")
	flags.StringSlice("search-path", config.DefaultSearchPaths(), "Fallback model locations, probed in order")
	flags.String("metadata", "", "Model metadata JSON (default: model_metadata.json next to the model)")
	flags.String("ort-library", "", "Path to the onnxruntime shared library")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("log-format", "text", "Log format: text or json")
	flags.String("output", config.OutputBlock, "Result format: block (JSON between markers) or plain (class index)")
	flags.Bool("no-color", false, "Disable colored output")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return failure.Wrap(failure.Config, "parse flags", err)
	})
	return cmd
}

func exactlyOneImage(_ *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return failure.New(failure.Config, "arguments", "missing image path")
	case 1:
		return nil
	default:
		return failure.New(failure.Config, "arguments", "expected exactly one image path, got %d", len(args))
	}
}

func buildConfig(v *viper.Viper, flags *pflag.FlagSet, imagePath string) (*config.Config, error) {
	if err := v.BindPFlags(flags); err != nil {
		return nil, failure.Wrap(failure.Config, "bind flags", err)
	}
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, failure.Wrap(failure.Config, "read config "+file, err)
		}
	}

	return config.New(config.Config{
		ImagePath:    imagePath,
		ModelPath:    v.GetString("model"),
		SearchPaths:  v.GetStringSlice("search-path"),
		MetadataPath: v.GetString("metadata"),
		ORTLibrary:   v.GetString("ort-library"),
		LogLevel:     v.GetString("log-level"),
		LogFormat:    v.GetString("log-format"),
		Output:       v.GetString("output"),
		NoColor:      v.GetBool("no-color"),
	})
}

// Execute runs the root command with the given arguments.
func Execute(out io.Writer, args []string, opts ...Option) error {
	if args == nil {
		args = []string{}
	}
	cmd := NewRootCmd(opts...)
	cmd.SetOut(out)
	cmd.SetArgs(args)
	return cmd.Execute()
}

// PrintError writes the tagged error followed by its stack trace. The tag
// is colored only when w is a terminal and noColor is unset.
func PrintError(w io.Writer, err error, noColor bool) {
	tag := color.New(color.FgRed, color.Bold)
	if noColor || !isTerminal(w) {
		tag.DisableColor()
	} else {
		tag.EnableColor()
	}
	tag.Fprintf(w, "error [%s]: ", failure.KindOf(err))
	fmt.Fprintln(w, err)
	if st := failure.StackTrace(err); len(st) > 0 {
		fmt.Fprintf(w, "%+v\n", st)
	}
}

// NoColorRequested reports whether args carry --no-color. It tolerates
// arguments the root command would reject.
func NoColorRequested(args []string) bool {
	flags := NewRootCmd().Flags()
	flags.ParseErrorsWhitelist.UnknownFlags = true
	_ = flags.Parse(args)
	noColor, _ := flags.GetBool("no-color")
	return noColor
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
