package scanner

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esocial-informe/core/types"
)

const remunerationXML = `<eSocial xmlns="http://www.esocial.gov.br/schema/evt/evtRemun/v1"><evtRemun>
  <ideEvento><perApur>2025-01</perApur></ideEvento>
  <ideEmpregador><nrInsc>111</nrInsc></ideEmpregador>
  <ideTrabalhador><cpfTrab>11122233344</cpfTrab></ideTrabalhador>
  <dmDev><itensRemun><codRubr>1000</codRubr><vrRubr>5000.00</vrRubr></itensRemun></dmDev>
</evtRemun></eSocial>`

const paymentXML = `<eSocial><evtPgtos><ideBenef>
  <cpfBenef>11122233344</cpfBenef>
  <infoPgto><perRef>2025-01</perRef></infoPgto>
</ideBenef></evtPgtos></eSocial>`

func writeZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eventos.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func TestZipSourceFiltersByExtension(t *testing.T) {
	path := writeZip(t, map[string]string{
		"a.xml":      remunerationXML,
		"B.XML":      paymentXML,
		"notes.txt":  "ignored",
		"sub/c.json": "ignored",
	})

	var names []string
	source := &ZipSource{Path: path}
	err := source.Each(context.Background(), func(doc Document) error {
		names = append(names, doc.Name)
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.xml", "B.XML"}, names)
}

func TestDirSourceWalksTree(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.xml"), []byte(remunerationXML), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.xml"), []byte(paymentXML), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("x"), 0644))

	var names []string
	source := &DirSource{Path: dir}
	err := source.Each(context.Background(), func(doc Document) error {
		names = append(names, doc.Name)
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.xml", filepath.Join("sub", "b.xml")}, names)
}

func TestForPath(t *testing.T) {
	zipPath := writeZip(t, map[string]string{"a.xml": remunerationXML})

	source, err := ForPath(zipPath)
	require.NoError(t, err)
	assert.IsType(t, &ZipSource{}, source)

	source, err = ForPath(t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &DirSource{}, source)

	_, err = ForPath(filepath.Join(t.TempDir(), "missing.zip"))
	assert.Error(t, err)
}

func TestBatchRunMergesAndCountsSkips(t *testing.T) {
	path := writeZip(t, map[string]string{
		"remun.xml":  remunerationXML,
		"pgtos.xml":  paymentXML,
		"broken.xml": "<<< not xml",
	})

	batch := Batch{Workers: 3}
	source := &ZipSource{Path: path}
	result, err := batch.Run(context.Background(), []Source{source})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 3, result.Documents)
	assert.Equal(t, 2, result.Extracted)
	assert.Equal(t, 1, result.Skipped)

	require.Len(t, result.Store.Items(), 1)
	assert.True(t, result.Store.Confirmed(types.PersonID("11122233344"), types.Period("2025-01")))
}

func TestBatchRunHonorsCancellation(t *testing.T) {
	path := writeZip(t, map[string]string{"a.xml": remunerationXML})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := Batch{Workers: 1}
	_, err := batch.Run(ctx, []Source{&ZipSource{Path: path}})
	assert.ErrorIs(t, err, context.Canceled)
}
