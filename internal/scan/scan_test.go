package scan

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/confgraph/internal/ctxlog"
	"github.com/vk/confgraph/internal/defs"
	"github.com/vk/confgraph/internal/meta"
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func scanSource(t *testing.T) *meta.Source {
	t.Helper()
	src := meta.NewSource()
	add := func(d *meta.Descriptor) {
		require.NoError(t, src.AddDescriptor(d))
	}
	component := []meta.Annotation{meta.NewAnnotation(meta.AnnotationComponent)}
	add(&meta.Descriptor{Name: "app.OrderService", Kind: meta.KindUnit, Annotations: component})
	add(&meta.Descriptor{Name: "app.UserService", Kind: meta.KindUnit, Annotations: component})
	add(&meta.Descriptor{Name: "app.Helper", Kind: meta.KindUnit})
	add(&meta.Descriptor{
		Name: "app.Service", Kind: meta.KindAnnotation,
		Annotations: component,
	})
	add(&meta.Descriptor{
		Name: "app.PaymentService", Kind: meta.KindUnit,
		Annotations: []meta.Annotation{meta.NewAnnotation("app.Service")},
	})
	add(&meta.Descriptor{Name: "other.CacheService", Kind: meta.KindUnit, Annotations: component})
	return src
}

func TestScan(t *testing.T) {
	t.Run("finds components under the requested package", func(t *testing.T) {
		reg := defs.NewRegistry()
		scanner := NewSourceScanner(scanSource(t), reg)

		holders, err := scanner.Scan(testContext(), Directive{Packages: []string{"app"}}, "app.Root")
		require.NoError(t, err)

		names := make([]string, 0, len(holders))
		for _, h := range holders {
			names = append(names, h.Name)
		}
		// Names() is sorted, so discovery order is deterministic. The plain
		// unit lacks the stereotype and the annotation declaration is not a
		// component itself.
		assert.Equal(t, []string{"orderService", "paymentService", "userService"}, names)

		def, ok := reg.Get("orderService")
		require.True(t, ok)
		assert.Equal(t, "app.OrderService", def.UnitName)
		assert.Equal(t, defs.RoleApplication, def.Role)
		assert.Equal(t, "app.Root", def.Source)
	})

	t.Run("other packages are untouched", func(t *testing.T) {
		reg := defs.NewRegistry()
		scanner := NewSourceScanner(scanSource(t), reg)

		_, err := scanner.Scan(testContext(), Directive{Packages: []string{"app"}}, "app.Root")
		require.NoError(t, err)
		assert.False(t, reg.Contains("cacheService"))
	})

	t.Run("include and exclude globs filter by name", func(t *testing.T) {
		reg := defs.NewRegistry()
		scanner := NewSourceScanner(scanSource(t), reg)

		holders, err := scanner.Scan(testContext(), Directive{
			Packages: []string{"app"},
			Include:  []string{"app.*Service"},
			Exclude:  []string{"app.User*"},
		}, "app.Root")
		require.NoError(t, err)
		require.Len(t, holders, 2)
		assert.Equal(t, "orderService", holders[0].Name)
		assert.Equal(t, "paymentService", holders[1].Name)
	})

	t.Run("already registered beans are skipped", func(t *testing.T) {
		reg := defs.NewRegistry()
		reg.Register("orderService", &defs.Definition{UnitName: "app.OrderService"})
		scanner := NewSourceScanner(scanSource(t), reg)

		holders, err := scanner.Scan(testContext(), Directive{Packages: []string{"app"}}, "app.Root")
		require.NoError(t, err)
		for _, h := range holders {
			assert.NotEqual(t, "orderService", h.Name)
		}
	})

	t.Run("invalid pattern fails", func(t *testing.T) {
		scanner := NewSourceScanner(scanSource(t), defs.NewRegistry())
		_, err := scanner.Scan(testContext(), Directive{Include: []string{"app.["}}, "app.Root")
		assert.ErrorContains(t, err, "invalid include pattern")
	})
}

func TestDirectiveFromAnnotation(t *testing.T) {
	t.Run("explicit attributes", func(t *testing.T) {
		ann := meta.NewAnnotation(meta.AnnotationScan).
			WithStrings("packages", "app", "other").
			WithStrings("include", "**Service").
			WithStrings("exclude", "**Internal*")
		d := DirectiveFromAnnotation(ann, "app.Root")
		assert.Equal(t, []string{"app", "other"}, d.Packages)
		assert.Equal(t, []string{"**Service"}, d.Include)
		assert.Equal(t, []string{"**Internal*"}, d.Exclude)
	})

	t.Run("defaults to the declaring package", func(t *testing.T) {
		d := DirectiveFromAnnotation(meta.NewAnnotation(meta.AnnotationScan), "app.Root")
		assert.Equal(t, []string{"app"}, d.Packages)
	})
}
