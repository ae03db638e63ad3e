package prompt

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"hookgenie-api/internal/domain/entity"
)

//go:embed catalog/creators.yaml
var creatorsYAML []byte

type catalogDoc struct {
	Creators []struct {
		Name     string                  `yaml:"name"`
		Examples []entity.CreatorExample `yaml:"examples"`
	} `yaml:"creators"`
}

// Catalog 创作者风格示例目录（只读）
type Catalog struct {
	order    []entity.CreatorStyle
	examples map[entity.CreatorStyle][]entity.CreatorExample
}

var (
	defaultCatalog     *Catalog
	defaultCatalogErr  error
	defaultCatalogOnce sync.Once
)

// DefaultCatalog 返回内嵌 YAML 构建的目录，仅解析一次
func DefaultCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = ParseCatalog(creatorsYAML)
	})
	return defaultCatalog, defaultCatalogErr
}

// ParseCatalog 解析目录文档
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse creator catalog: %w", err)
	}

	c := &Catalog{examples: make(map[entity.CreatorStyle][]entity.CreatorExample, len(doc.Creators))}
	for _, cr := range doc.Creators {
		style := entity.CreatorStyle(strings.TrimSpace(cr.Name))
		if style.IsNone() {
			continue
		}
		if _, dup := c.examples[style]; !dup {
			c.order = append(c.order, style)
		}
		c.examples[style] = append(c.examples[style], cr.Examples...)
	}
	return c, nil
}

// Styles 返回目录中的风格（保持文档顺序）
func (c *Catalog) Styles() []entity.CreatorStyle {
	out := make([]entity.CreatorStyle, len(c.order))
	copy(out, c.order)
	return out
}

// Examples 返回风格的示例；None 或未知风格返回空
func (c *Catalog) Examples(style entity.CreatorStyle) []entity.CreatorExample {
	if c == nil || style.IsNone() {
		return nil
	}
	src := c.examples[style]
	if len(src) == 0 {
		return nil
	}
	out := make([]entity.CreatorExample, len(src))
	copy(out, src)
	return out
}

// formatExamples 按 "Example N:\nHook: …\nBody: …" 拼接
func formatExamples(examples []entity.CreatorExample) string {
	parts := make([]string, 0, len(examples))
	for i, ex := range examples {
		parts = append(parts, fmt.Sprintf("Example %d:\nHook: %s\nBody: %s", i+1, ex.Hook, ex.Body))
	}
	return strings.Join(parts, "\n\n")
}
