/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: converter.go
Description: Conversion pipeline. Ingests a document, normalizes attribute-based XML,
serializes the tree as markup and renders the inferred schema. Each call is independent
so a single Converter can serve concurrent requests.
*/

package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/xmlforge/pkg/inference"
	"github.com/kleascm/xmlforge/pkg/ingest"
	"github.com/kleascm/xmlforge/pkg/interfaces"
	"github.com/kleascm/xmlforge/pkg/markup"
	"github.com/kleascm/xmlforge/pkg/normalize"
	"github.com/kleascm/xmlforge/pkg/tree"
	"github.com/sirupsen/logrus"
)

// Converter runs documents through ingest, normalize, serialize and schema inference
type Converter struct {
	config     *Config
	registry   *ingest.Registry
	serializer *markup.Serializer
	engine     *inference.Engine
	renderer   *inference.Renderer
	reporters  []Reporter
	logger     logrus.FieldLogger
}

// NewConverter creates a new Converter. A nil config selects DefaultConfig and a nil
// logger discards output.
func NewConverter(config *Config, logger logrus.FieldLogger, reporters ...Reporter) (*Converter, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		discard := logrus.New()
		discard.SetLevel(logrus.PanicLevel)
		logger = discard
	}

	opts := config.MarkupOptions()
	return &Converter{
		config:     config,
		registry:   ingest.NewRegistry(config.SampleSize),
		serializer: markup.NewSerializer(opts),
		engine:     inference.NewEngine(),
		renderer:   inference.NewRenderer(opts),
		reporters:  reporters,
		logger:     logger,
	}, nil
}

// Config returns the converter's settings
func (c *Converter) Config() *Config {
	return c.config
}

// Convert ingests data as format and returns both artifacts. No partial output is
// returned on error.
func (c *Converter) Convert(data []byte, format interfaces.Format) (*Result, error) {
	id := uuid.New().String()
	start := time.Now()
	log := c.logger.WithFields(logrus.Fields{"request_id": id, "format": format.String()})

	result, err := c.convert(log, data, format)
	if err != nil {
		for _, r := range c.reporters {
			r.OnFailure(id, format, err)
		}
		return nil, err
	}

	result.ID = id
	result.InputSize = len(data)
	result.CreatedAt = start
	result.Duration = time.Since(start)
	for _, r := range c.reporters {
		r.OnConversion(result)
	}
	return result, nil
}

func (c *Converter) convert(log logrus.FieldLogger, data []byte, format interfaces.Format) (*Result, error) {
	ingestor, err := c.registry.Get(format)
	if err != nil {
		return nil, err
	}

	root, err := ingestor.Parse(data)
	if err != nil {
		return nil, err
	}
	log.WithField("nodes", root.Count()).Debug("Ingested document")

	structure := normalize.Unknown
	if format == interfaces.FormatXML && c.config.NormalizeAttributes {
		root, structure = normalize.Normalize(root)
		log.WithField("structure", structure.String()).Debug("Normalized document")
	}

	out, schema, err := c.Render(root)
	if err != nil {
		return nil, err
	}
	log.Debug("Rendered schema")

	return &Result{
		Format:    format,
		Structure: structure,
		Markup:    out,
		Schema:    schema,
		Nodes:     root.Count(),
	}, nil
}

// Render serializes an already built tree and renders its schema. A tree that cannot
// be serialized is reported as a schema inference failure.
func (c *Converter) Render(root *tree.Node) (out, schema string, err error) {
	out, err = c.serializer.Serialize(root)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", interfaces.ErrSchemaInference, err)
	}

	model, err := c.engine.Infer(root)
	if err != nil {
		return "", "", err
	}
	schema, err = c.renderer.Render(model)
	if err != nil {
		return "", "", err
	}
	return out, schema, nil
}

// Convert converts data with the default configuration
func Convert(data []byte, format interfaces.Format) (markup, schema string, err error) {
	c, err := NewConverter(nil, nil)
	if err != nil {
		return "", "", err
	}
	result, err := c.Convert(data, format)
	if err != nil {
		return "", "", err
	}
	return result.Markup, result.Schema, nil
}
