package cli

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/Brownie44l1/signscan/internal/config"
	"github.com/Brownie44l1/signscan/internal/failure"
	"github.com/Brownie44l1/signscan/internal/logging"
	"github.com/Brownie44l1/signscan/internal/model"
	"github.com/Brownie44l1/signscan/internal/preprocess"
	"github.com/Brownie44l1/signscan/internal/report"
)

// Run resolves and loads the model, preprocesses the image, runs inference
// and writes the result to out. Nothing is written between the result
// markers unless every stage succeeded.
func Run(out io.Writer, cfg *config.Config, o *options) error {
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, out, cfg.NoColor)
	log := logging.Component(logger, "cli")
	log.WithField("image", cfg.ImagePath).Debug("Starting prediction")

	resolver := model.NewResolver(logging.Component(logger, "resolver"))
	resolver.ScanRoot = o.scanRoot
	modelPath, err := resolver.Resolve(cfg.ModelPath, cfg.SearchPaths)
	if err != nil {
		return err
	}

	metadata, err := model.LoadMetadata(cfg.MetadataPath, modelPath)
	if err != nil {
		return err
	}
	if metadata != nil {
		log.WithField("classes", len(metadata.Classes)).Info("Metadata loaded")
	}

	log.WithField("path", modelPath).Info("Loading model")
	predictor, err := o.loader(modelPath, model.ONNXOptions{
		SharedLibraryPath: cfg.ORTLibrary,
		InputShape:        preprocess.Shape,
		Metadata:          metadata,
	}, logging.Component(logger, "model"))
	if err != nil {
		return failure.Wrap(failure.Decode, "", err)
	}
	defer func() {
		if err := predictor.Close(); err != nil {
			log.WithError(err).Warn("Failed to release model")
		}
	}()
	log.WithFields(logrus.Fields{
		"input_shape":  predictor.InputShape(),
		"output_width": predictor.OutputWidth(),
	}).Info("Model ready")

	input, err := preprocess.New(logging.Component(logger, "preprocess")).Load(cfg.ImagePath)
	if err != nil {
		return err
	}

	probs, err := predictor.Infer(input)
	if err != nil {
		return failure.Wrap(failure.Inference, "predict", err)
	}
	log.WithField("outputs", len(probs)).Debug("Inference complete")

	summary, err := report.Summarize(probs, metadata.Labels(), report.TopK)
	if err != nil {
		return err
	}
	report.Log(logging.Component(logger, "report"), summary)
	if cfg.LogFormat == "text" {
		report.RenderTable(out, summary, cfg.NoColor)
	}

	if cfg.Output == config.OutputPlain {
		err = report.WritePlain(out, summary)
	} else {
		err = report.WriteResult(out, summary)
	}
	return failure.Wrap(failure.Inference, "write result", err)
}
