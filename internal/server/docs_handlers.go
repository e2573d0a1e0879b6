package server

import (
	"fmt"

	"postboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"
	"gopkg.in/yaml.v3"
)

// OpenAPIJSON handles GET /api/openapi.json
func (s *Server) OpenAPIJSON(c *fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return s.respondServiceError(c, models.NewInternalError(err))
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.SendString(doc)
}

// OpenAPIYAML handles GET /api/openapi.yaml
func (s *Server) OpenAPIYAML(c *fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return s.respondServiceError(c, models.NewInternalError(err))
	}

	out, err := openAPIToYAML(doc)
	if err != nil {
		return s.respondServiceError(c, models.NewInternalError(err))
	}
	c.Set(fiber.HeaderContentType, "application/yaml; charset=utf-8")
	return c.Send(out)
}

// openAPIToYAML re-encodes a JSON document as YAML. Decoding into a node
// keeps the key order of the source.
func openAPIToYAML(doc string) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(doc), &node); err != nil {
		return nil, fmt.Errorf("decode openapi document: %w", err)
	}
	clearStyle(&node)

	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, fmt.Errorf("encode openapi yaml: %w", err)
	}
	return out, nil
}

// clearStyle drops the flow style inherited from JSON so the output is block YAML.
func clearStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle
	for _, child := range n.Content {
		clearStyle(child)
	}
}
