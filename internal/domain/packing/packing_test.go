package packing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suministra/suministra-api/internal/domain/packing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Estos tests son el "canario en la mina" del motor de empaque: la dirección
// de redondeo (techo para stock positivo, piso para negativo), la división de
// piso para estibas y la renormalización de signo se infirieron del sistema
// original, así que cualquier cambio inadvertido debe fallar aquí de inmediato.
// ──────────────────────────────────────────────────────────────────────────────

// spec estándar de los ejemplos: 10 pies² por capa, 5 capas por estiba.
func specEjemplo() packing.Spec {
	return packing.Spec{FeetPerLayer: 10, LayersPerPallet: 5}
}

// ── QuantityToPacked: vectores exactos ───────────────────────────────────────

// 100 pies² = 10 capas exactas = 2 estibas, 0 capas.
func TestQuantityToPacked_MultiploExacto(t *testing.T) {
	got, err := packing.QuantityToPacked(100, specEjemplo())
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Pallets, "100 pies² a 10/capa y 5 capas/estiba son 2 estibas")
	assert.Equal(t, float64(0), got.Layers, "sin remanente de capas")
}

// 103 pies² = 10.3 capas → techo → 11 capas = 2 estibas + 1 capa.
// Una capa parcial ocupa el espacio de una capa completa.
func TestQuantityToPacked_CapaParcialRedondeaArriba(t *testing.T) {
	got, err := packing.QuantityToPacked(103, specEjemplo())
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Pallets)
	assert.Equal(t, float64(1), got.Layers, "la fracción de capa cuenta como capa entera")
}

// -5 pies² = -0.5 capas → piso → -1 capa → estibas = floor(-1/5) = -1,
// capas = -1 - (-1*5) = 4 → normalización de signo → capas = 4 - 5 = -1.
// El resultado final es {-1, -1}; aquí NO se ajusta el conteo de estibas.
func TestQuantityToPacked_NegativoNormalizaSigno(t *testing.T) {
	got, err := packing.QuantityToPacked(-5, specEjemplo())
	require.NoError(t, err)
	assert.Equal(t, int64(-1), got.Pallets, "floor(-1/5) debe dar -1, no truncar a 0")
	assert.Equal(t, float64(-1), got.Layers, "capas deben quedar <= 0 cuando estibas < 0")
}

func TestQuantityToPacked_Cero(t *testing.T) {
	got, err := packing.QuantityToPacked(0, specEjemplo())
	require.NoError(t, err)
	assert.Equal(t, packing.PackedStock{Pallets: 0, Layers: 0}, got)
}

// ── Invariante de signo: barrido de cantidades ────────────────────────────────

// Para toda salida válida: Pallets < 0 implica Layers <= 0.
func TestQuantityToPacked_InvarianteDeSigno(t *testing.T) {
	spec := packing.Spec{FeetPerLayer: 7.5, LayersPerPallet: 4}
	for q := -200.0; q <= 200.0; q += 3.3 {
		got, err := packing.QuantityToPacked(q, spec)
		require.NoError(t, err)
		if got.Pallets < 0 {
			assert.LessOrEqual(t, got.Layers, float64(0),
				"cantidad %v: estibas negativas exigen capas <= 0", q)
		}
	}
}

// ── Monotonía ────────────────────────────────────────────────────────────────

// Aumentar la cantidad nunca disminuye el conteo de estibas. El total
// pallets*layersPerPallet+layers solo es monótono del lado no negativo: en el
// lado negativo la normalización de signo (que no ajusta estibas) lo corre a
// propósito, así que ahí solo se exige la monotonía de estibas.
func TestQuantityToPacked_Monotonia(t *testing.T) {
	spec := specEjemplo()
	prevPallets := int64(math.MinInt64)
	for q := -120.0; q <= 120.0; q += 1.7 {
		got, err := packing.QuantityToPacked(q, spec)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.Pallets, prevPallets,
			"cantidad %v: las estibas no pueden bajar al subir la cantidad", q)
		prevPallets = got.Pallets
	}

	prevTotal := math.Inf(-1)
	for q := 0.0; q <= 120.0; q += 1.7 {
		got, err := packing.QuantityToPacked(q, spec)
		require.NoError(t, err)
		total := float64(got.Pallets)*spec.LayersPerPallet + got.Layers
		assert.GreaterOrEqual(t, total, prevTotal,
			"cantidad %v: el total de capas no puede bajar al subir la cantidad", q)
		prevTotal = total
	}
}

// ── Round trip ───────────────────────────────────────────────────────────────

// Múltiplos exactos de una capa no pierden nada en la ida y vuelta. Igual que
// en la monotonía, la propiedad solo vale completa del lado no negativo: la
// normalización de signo no ajusta estibas, así que del lado negativo solo
// las estibas completas (múltiplos de LayersPerPallet) regresan sin pérdida.
func TestRoundTrip_MultiplosExactosSinPerdida(t *testing.T) {
	spec := packing.Spec{FeetPerLayer: 12.5, LayersPerPallet: 6}
	for n := int64(0); n <= 40; n++ {
		q := float64(n) * spec.FeetPerLayer
		packed, err := packing.QuantityToPacked(q, spec)
		require.NoError(t, err)
		back, err := packing.PackedToQuantity(float64(packed.Pallets), packed.Layers, spec)
		require.NoError(t, err)
		assert.InDelta(t, q, back, 1e-9, "n=%d: múltiplo exacto de capa debe ser sin pérdida", n)
	}
	for n := int64(-6); n >= -36; n -= 6 {
		q := float64(n) * spec.FeetPerLayer
		packed, err := packing.QuantityToPacked(q, spec)
		require.NoError(t, err)
		back, err := packing.PackedToQuantity(float64(packed.Pallets), packed.Layers, spec)
		require.NoError(t, err)
		assert.InDelta(t, q, back, 1e-9, "n=%d: estibas negativas completas deben ser sin pérdida", n)
	}
}

// Del lado negativo con remanente de capas, la vuelta difiere del original en
// exactamente una estiba: la normalización resta LayersPerPallet de capas sin
// tocar el conteo de estibas, corriendo el total. Este test fija ese
// corrimiento para que nadie lo "arregle" compensando estibas.
func TestRoundTrip_NegativoConRemanenteCorreUnaEstiba(t *testing.T) {
	spec := packing.Spec{FeetPerLayer: 12.5, LayersPerPallet: 6}
	unaEstiba := spec.LayersPerPallet * spec.FeetPerLayer
	for n := int64(-1); n >= -40; n-- {
		if n%int64(spec.LayersPerPallet) == 0 {
			continue
		}
		q := float64(n) * spec.FeetPerLayer
		packed, err := packing.QuantityToPacked(q, spec)
		require.NoError(t, err)
		back, err := packing.PackedToQuantity(float64(packed.Pallets), packed.Layers, spec)
		require.NoError(t, err)
		assert.InDelta(t, q-unaEstiba, back, 1e-9,
			"n=%d: el remanente negativo debe correr el total exactamente una estiba", n)
	}
}

// La ida y vuelta de una cantidad que requirió redondeo NO devuelve el
// original: el redondeo a capa completa es deliberado. Este test fija esa
// pérdida para que nadie la "arregle" a lossless.
func TestRoundTrip_ConRedondeoEsLossy(t *testing.T) {
	spec := specEjemplo()
	packed, err := packing.QuantityToPacked(103, spec)
	require.NoError(t, err)
	back, err := packing.PackedToQuantity(float64(packed.Pallets), packed.Layers, spec)
	require.NoError(t, err)
	assert.Equal(t, float64(110), back, "103 pies² se empacan como 11 capas = 110 pies²")
	assert.NotEqual(t, float64(103), back)
}

// ── PackedToQuantity ─────────────────────────────────────────────────────────

func TestPackedToQuantity_AceptaFraccionesYNegativos(t *testing.T) {
	spec := specEjemplo()

	q, err := packing.PackedToQuantity(2, 1, spec)
	require.NoError(t, err)
	assert.Equal(t, float64(110), q)

	q, err = packing.PackedToQuantity(-1, -1, spec)
	require.NoError(t, err)
	assert.Equal(t, float64(-60), q)

	q, err = packing.PackedToQuantity(0.5, 2.5, spec)
	require.NoError(t, err)
	assert.Equal(t, float64(50), q, "estibas fraccionarias son válidas como entrada")
}

// ── ApplyPackedDelta ─────────────────────────────────────────────────────────

// Delta (−1 estiba, +2 capas) sobre stock vacío: total = -3 capas →
// floor(-3/5) = -1 estiba, 2 capas → renormaliza a {0, -3}.
// Verificado contra la ley de conservación: 0*5 + (-3) = -3.
func TestApplyPackedDelta_RenormalizacionConservaTotal(t *testing.T) {
	got, err := packing.ApplyPackedDelta(
		packing.PackedStock{Pallets: 0, Layers: 0},
		packing.PackedStock{Pallets: -1, Layers: 2},
		5,
	)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Pallets, "la renormalización sube estibas un paso hacia cero")
	assert.Equal(t, float64(-3), got.Layers)
}

// Delta cero es un no-op para cualquier estado que respete el invariante.
func TestApplyPackedDelta_DeltaCeroEsNoOp(t *testing.T) {
	casos := []packing.PackedStock{
		{Pallets: 0, Layers: 0},
		{Pallets: 3, Layers: 2},
		{Pallets: 7, Layers: 0.5},
		{Pallets: -2, Layers: -1},
		{Pallets: -1, Layers: 0},
	}
	for _, c := range casos {
		got, err := packing.ApplyPackedDelta(c, packing.PackedStock{}, 5)
		require.NoError(t, err)
		assert.Equal(t, c.Pallets, got.Pallets, "estado %+v: delta cero no debe mover estibas", c)
		assert.InDelta(t, c.Layers, got.Layers, 1e-9, "estado %+v: delta cero no debe mover capas", c)
	}
}

// Conservación: la renormalización solo redistribuye entre estibas y capas,
// nunca cambia el total pallets*layersPerPallet + layers.
func TestApplyPackedDelta_ConservacionDeCapas(t *testing.T) {
	const lpp = 4.0
	deltas := []packing.PackedStock{
		{Pallets: 2, Layers: 3},
		{Pallets: -1, Layers: 2},
		{Pallets: -3, Layers: 3.5},
		{Pallets: 0, Layers: -7},
		{Pallets: 5, Layers: -0.25},
	}
	current := packing.PackedStock{Pallets: 1, Layers: 1}
	for _, d := range deltas {
		got, err := packing.ApplyPackedDelta(current, d, lpp)
		require.NoError(t, err)

		esperado := float64(current.Pallets)*lpp + current.Layers + float64(d.Pallets)*lpp + d.Layers
		obtenido := float64(got.Pallets)*lpp + got.Layers
		assert.InDelta(t, esperado, obtenido, 1e-9,
			"delta %+v: el total de capas debe conservarse", d)

		if got.Pallets < 0 {
			assert.LessOrEqual(t, got.Layers, float64(0),
				"delta %+v: resultado debe respetar el invariante de signo", d)
		}
	}
}

// Varias aplicaciones sucesivas acumulan igual que una sola suma.
func TestApplyPackedDelta_Acumulacion(t *testing.T) {
	const lpp = 5.0
	stock := packing.PackedStock{Pallets: 0, Layers: 0}
	var err error
	for i := 0; i < 7; i++ {
		stock, err = packing.ApplyPackedDelta(stock, packing.PackedStock{Pallets: 0, Layers: 3}, lpp)
		require.NoError(t, err)
	}
	// 21 capas = 4 estibas + 1 capa
	assert.Equal(t, int64(4), stock.Pallets)
	assert.InDelta(t, 1, stock.Layers, 1e-9)
}

// ── ApplyDelta: modo packed ──────────────────────────────────────────────────

func TestApplyDelta_ModoPacked(t *testing.T) {
	spec := specEjemplo()
	got, err := packing.ApplyDelta(
		packing.StockLevel{Quantity: 100, Pallets: 2, Layers: 0},
		packing.Delta{Pallets: 1, Layers: 2},
		spec,
		packing.ModePacked,
	)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Packed.Pallets)
	assert.InDelta(t, 2, got.Packed.Layers, 1e-9)
	assert.InDelta(t, 170, got.Quantity, 1e-9, "la cantidad se deriva del resultado empacado")
}

// ── ApplyDelta: modo quantity ────────────────────────────────────────────────

func TestApplyDelta_ModoQuantity(t *testing.T) {
	spec := specEjemplo()
	got, err := packing.ApplyDelta(
		packing.StockLevel{Quantity: 100, Pallets: 2, Layers: 0},
		packing.Delta{Quantity: -30},
		spec,
		packing.ModeQuantity,
	)
	require.NoError(t, err)
	assert.InDelta(t, 70, got.Quantity, 1e-9)
	assert.Equal(t, int64(1), got.Packed.Pallets, "70 pies² = 7 capas = 1 estiba + 2 capas")
	assert.InDelta(t, 2, got.Packed.Layers, 1e-9)
}

// Si la cantidad almacenada está desfasada respecto a estibas/capas por más
// de la tolerancia, los campos empacados son la fuente de verdad.
func TestApplyDelta_ModoQuantity_ReconciliaCantidadDesfasada(t *testing.T) {
	spec := specEjemplo()
	// Empacado dice 2 estibas = 100 pies², pero la cantidad guardada dice 87.
	got, err := packing.ApplyDelta(
		packing.StockLevel{Quantity: 87, Pallets: 2, Layers: 0},
		packing.Delta{Quantity: -10},
		spec,
		packing.ModeQuantity,
	)
	require.NoError(t, err)
	assert.InDelta(t, 90, got.Quantity, 1e-9,
		"debe partir de la cantidad derivada (100), no de la guardada (87)")
}

// Diferencias dentro de la tolerancia no disparan la reconciliación.
func TestApplyDelta_ModoQuantity_ToleranciaRespetaGuardada(t *testing.T) {
	spec := specEjemplo()
	got, err := packing.ApplyDelta(
		packing.StockLevel{Quantity: 100.005, Pallets: 2, Layers: 0},
		packing.Delta{Quantity: -10},
		spec,
		packing.ModeQuantity,
	)
	require.NoError(t, err)
	assert.InDelta(t, 90.005, got.Quantity, 1e-9)
}

// Una salida mayor al stock deja inventario negativo (backorder) con la
// convención de signo intacta.
func TestApplyDelta_ModoQuantity_Backorder(t *testing.T) {
	spec := specEjemplo()
	got, err := packing.ApplyDelta(
		packing.StockLevel{Quantity: 20, Pallets: 0, Layers: 2},
		packing.Delta{Quantity: -25},
		spec,
		packing.ModeQuantity,
	)
	require.NoError(t, err)
	assert.InDelta(t, -5, got.Quantity, 1e-9)
	assert.Equal(t, int64(-1), got.Packed.Pallets)
	assert.InDelta(t, -1, got.Packed.Layers, 1e-9)
}

// ── Errores ──────────────────────────────────────────────────────────────────

func TestQuantityToPacked_SpecInvalido(t *testing.T) {
	casos := []packing.Spec{
		{FeetPerLayer: 0, LayersPerPallet: 5},
		{FeetPerLayer: 10, LayersPerPallet: 0},
		{FeetPerLayer: -10, LayersPerPallet: 5},
		{FeetPerLayer: 10, LayersPerPallet: -5},
		{FeetPerLayer: math.NaN(), LayersPerPallet: 5},
		{FeetPerLayer: 10, LayersPerPallet: math.Inf(1)},
	}
	for _, spec := range casos {
		_, err := packing.QuantityToPacked(50, spec)
		assert.ErrorIs(t, err, packing.ErrInvalidPackingSpec, "spec %+v debe rechazarse", spec)
	}
}

func TestQuantityToPacked_EntradaNoFinita(t *testing.T) {
	spec := specEjemplo()
	for _, q := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := packing.QuantityToPacked(q, spec)
		assert.ErrorIs(t, err, packing.ErrNonFiniteInput)
	}
}

func TestPackedToQuantity_EntradaNoFinita(t *testing.T) {
	spec := specEjemplo()
	_, err := packing.PackedToQuantity(math.NaN(), 0, spec)
	assert.ErrorIs(t, err, packing.ErrNonFiniteInput)
	_, err = packing.PackedToQuantity(0, math.Inf(-1), spec)
	assert.ErrorIs(t, err, packing.ErrNonFiniteInput)
}

func TestApplyPackedDelta_Errores(t *testing.T) {
	_, err := packing.ApplyPackedDelta(packing.PackedStock{}, packing.PackedStock{}, 0)
	assert.ErrorIs(t, err, packing.ErrInvalidPackingSpec)

	_, err = packing.ApplyPackedDelta(
		packing.PackedStock{Layers: math.NaN()}, packing.PackedStock{}, 5)
	assert.ErrorIs(t, err, packing.ErrNonFiniteInput)
}

func TestApplyDelta_ModoDesconocido(t *testing.T) {
	_, err := packing.ApplyDelta(
		packing.StockLevel{}, packing.Delta{}, specEjemplo(), packing.DeltaMode("ambos"))
	assert.ErrorIs(t, err, packing.ErrInvalidDeltaMode)
}

func TestApplyDelta_EntradaNoFinita(t *testing.T) {
	_, err := packing.ApplyDelta(
		packing.StockLevel{Quantity: math.Inf(1)}, packing.Delta{}, specEjemplo(), packing.ModeQuantity)
	assert.ErrorIs(t, err, packing.ErrNonFiniteInput)

	_, err = packing.ApplyDelta(
		packing.StockLevel{}, packing.Delta{Layers: math.NaN()}, specEjemplo(), packing.ModePacked)
	assert.ErrorIs(t, err, packing.ErrNonFiniteInput)
}
