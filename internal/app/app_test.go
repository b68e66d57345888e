package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/quickinvoice/internal/config"
	"github.com/andy/quickinvoice/internal/crypto"
	"github.com/andy/quickinvoice/internal/domain"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Database.Path = filepath.Join(dir, "quickinvoice.db")
	cfg.Export.OutputDir = filepath.Join(dir, "invoices")
	cfg.Log.File = filepath.Join(dir, "quickinvoice.log")
	return cfg
}

func TestNewWithConfig_UsesEnvironmentKey(t *testing.T) {
	t.Setenv(crypto.EnvKey, "integration-key")
	ctx := context.Background()

	cfg := testConfig(t)
	cfg.Business.Name = "Acme Studio"
	cfg.Invoice.DefaultTemplate = "modern"

	a, err := NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	defer a.Close()

	c, err := a.NewController(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Acme Studio", c.Draft().BusinessName)
	assert.Equal(t, domain.TemplateModern, c.Draft().Template)

	_, err = c.Save(ctx)
	require.NoError(t, err)

	invoices, err := a.InvoiceService.List(ctx)
	require.NoError(t, err)
	assert.Len(t, invoices, 1)

	s, err := a.ReportService.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, s.InvoiceCount)
}

func TestProfile_IgnoresUnknownTemplate(t *testing.T) {
	cfg := testConfig(t)
	cfg.Invoice.DefaultTemplate = "neon"

	a := Wire(cfg, nil, nil, nil)
	assert.Empty(t, a.Profile().Template)
}
