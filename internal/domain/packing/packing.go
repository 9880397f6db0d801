// Package packing implementa el motor de conversión y ajuste de inventario
// entre cantidad continua (pies cuadrados) y la representación discreta de
// empaque (estibas + capas).
//
// Convención de signo para inventario negativo (backorder/sobrevendido):
// si Pallets < 0 entonces Layers <= 0. Un conteo negativo de estibas nunca
// se "compensa" con capas positivas, porque el signo del faltante quedaría
// ambiguo.
//
// Todas las funciones son puras y sin estado: reciben los valores actuales
// y el delta, devuelven los nuevos valores. No conocen HTTP, ni la base de
// datos, ni bloqueos de fila; eso es responsabilidad del caller.
package packing

import (
	"errors"
	"math"
)

// Errores del motor. Todos son fatales para la llamada: no hay I/O ni nada
// transitorio que reintentar.
var (
	ErrInvalidPackingSpec = errors.New("packing: spec inválido (pies por capa y capas por estiba deben ser > 0 y finitos)")
	ErrInvalidDeltaMode   = errors.New("packing: modo de delta desconocido")
	ErrNonFiniteInput     = errors.New("packing: entrada no finita (NaN o Inf)")
)

// DeltaMode indica en qué representación viene expresado el delta de un ajuste.
type DeltaMode string

const (
	// ModePacked el delta viene como (estibas, capas).
	ModePacked DeltaMode = "packed"
	// ModeQuantity el delta viene como cantidad continua (pies cuadrados).
	ModeQuantity DeltaMode = "quantity"
)

// quantityTolerance tolerancia (en la unidad del producto) para reconciliar
// la cantidad almacenada contra la derivada de estibas/capas. Si difieren por
// más de esto, los campos empacados son la fuente de verdad.
const quantityTolerance = 0.01

// Spec constantes de conversión de un producto: pies cuadrados por capa y
// capas por estiba. Son atributos del producto; el motor no las almacena.
type Spec struct {
	FeetPerLayer    float64
	LayersPerPallet float64
}

// Validate verifica que ambas constantes sean finitas y estrictamente positivas.
func (s Spec) Validate() error {
	if !isFinite(s.FeetPerLayer) || !isFinite(s.LayersPerPallet) {
		return ErrInvalidPackingSpec
	}
	if s.FeetPerLayer <= 0 || s.LayersPerPallet <= 0 {
		return ErrInvalidPackingSpec
	}
	return nil
}

// PackedStock stock expresado como estibas completas más un remanente de capas.
// Invariante: Pallets < 0 implica Layers <= 0.
type PackedStock struct {
	Pallets int64
	Layers  float64
}

// StockLevel estado actual de stock con ambas representaciones, tal como se
// lee de la fila de inventario.
type StockLevel struct {
	Quantity float64
	Pallets  int64
	Layers   float64
}

// Delta cambio solicitado. Según el modo se usa Quantity o (Pallets, Layers),
// nunca ambos en un mismo ajuste.
type Delta struct {
	Quantity float64
	Pallets  int64
	Layers   float64
}

// Adjustment resultado de aplicar un delta: la nueva cantidad y su forma empacada.
type Adjustment struct {
	Quantity float64
	Packed   PackedStock
}

// QuantityToPacked convierte una cantidad continua a (estibas, capas).
//
// Las capas exactas se redondean a capa completa: techo para cantidad >= 0
// (una capa parcial ocupa el espacio de una entera) y piso para cantidad < 0
// (el faltante tampoco se subcuenta). Las estibas salen por división con piso,
// bien definida también para totales negativos (-1/3 da -1, no 0).
//
// Si el resultado queda con estibas negativas y capas positivas se resta una
// estiba de capas para restaurar la convención de signo. Nótese que aquí NO
// se ajusta el conteo de estibas; ver ApplyPackedDelta para la renormalización
// que sí conserva el total.
func QuantityToPacked(quantity float64, spec Spec) (PackedStock, error) {
	if err := spec.Validate(); err != nil {
		return PackedStock{}, err
	}
	if !isFinite(quantity) {
		return PackedStock{}, ErrNonFiniteInput
	}

	exactLayers := quantity / spec.FeetPerLayer
	var totalLayers float64
	if quantity >= 0 {
		totalLayers = math.Ceil(exactLayers)
	} else {
		totalLayers = math.Floor(exactLayers)
	}

	pallets := math.Floor(totalLayers / spec.LayersPerPallet)
	layers := totalLayers - pallets*spec.LayersPerPallet
	if pallets < 0 && layers > 0 {
		layers -= spec.LayersPerPallet
	}
	return PackedStock{Pallets: int64(pallets), Layers: layers}, nil
}

// PackedToQuantity convierte (estibas, capas) a cantidad continua.
//
// Es el inverso algebraico del conteo de capas, pero NO un inverso perfecto
// de QuantityToPacked cuando la cantidad original requirió redondeo: el stock
// físico solo existe en capas completas, así que esa pérdida es deliberada.
// Se aceptan estibas y capas fraccionarias o negativas mientras sean finitas.
func PackedToQuantity(pallets, layers float64, spec Spec) (float64, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}
	if !isFinite(pallets) || !isFinite(layers) {
		return 0, ErrNonFiniteInput
	}
	totalLayers := pallets*spec.LayersPerPallet + layers
	return totalLayers * spec.FeetPerLayer, nil
}

// ApplyPackedDelta suma un delta empacado al stock empacado actual y devuelve
// el nuevo (estibas, capas) normalizado.
//
// Ambos operandos se llevan a total de capas, se suman y se re-derivan con
// división de piso. La renormalización de signo aquí es pallets += 1 y
// layers -= layersPerPallet: las capas bajan hacia el invariante y las
// estibas suben un paso hacia cero, de modo que
// pallets*layersPerPallet + layers no cambia.
func ApplyPackedDelta(current, delta PackedStock, layersPerPallet float64) (PackedStock, error) {
	if !isFinite(layersPerPallet) || layersPerPallet <= 0 {
		return PackedStock{}, ErrInvalidPackingSpec
	}
	if !isFinite(current.Layers) || !isFinite(delta.Layers) {
		return PackedStock{}, ErrNonFiniteInput
	}

	total := float64(current.Pallets)*layersPerPallet + current.Layers +
		float64(delta.Pallets)*layersPerPallet + delta.Layers

	pallets := math.Floor(total / layersPerPallet)
	layers := total - pallets*layersPerPallet
	if pallets < 0 && layers > 0 {
		layers -= layersPerPallet
		pallets++
	}
	return PackedStock{Pallets: int64(pallets), Layers: layers}, nil
}

// ApplyDelta aplica un delta expresado en cualquiera de las dos
// representaciones y devuelve la nueva cantidad junto con su forma empacada.
//
// En modo "packed" se aplica ApplyPackedDelta y la cantidad se deriva del
// resultado. En modo "quantity" primero se reconcilia la cantidad almacenada:
// si difiere de la derivada de estibas/capas por más de la tolerancia, se
// prefiere la derivada (los campos empacados son la fuente de verdad y la
// cantidad guardada puede estar desactualizada).
func ApplyDelta(current StockLevel, delta Delta, spec Spec, mode DeltaMode) (Adjustment, error) {
	if err := spec.Validate(); err != nil {
		return Adjustment{}, err
	}
	if !isFinite(current.Quantity) || !isFinite(current.Layers) ||
		!isFinite(delta.Quantity) || !isFinite(delta.Layers) {
		return Adjustment{}, ErrNonFiniteInput
	}

	switch mode {
	case ModePacked:
		packed, err := ApplyPackedDelta(
			PackedStock{Pallets: current.Pallets, Layers: current.Layers},
			PackedStock{Pallets: delta.Pallets, Layers: delta.Layers},
			spec.LayersPerPallet,
		)
		if err != nil {
			return Adjustment{}, err
		}
		quantity, err := PackedToQuantity(float64(packed.Pallets), packed.Layers, spec)
		if err != nil {
			return Adjustment{}, err
		}
		return Adjustment{Quantity: quantity, Packed: packed}, nil

	case ModeQuantity:
		derived, err := PackedToQuantity(float64(current.Pallets), current.Layers, spec)
		if err != nil {
			return Adjustment{}, err
		}
		baseQty := current.Quantity
		if math.Abs(derived-baseQty) > quantityTolerance {
			baseQty = derived
		}
		newQty := baseQty + delta.Quantity
		packed, err := QuantityToPacked(newQty, spec)
		if err != nil {
			return Adjustment{}, err
		}
		return Adjustment{Quantity: newQty, Packed: packed}, nil

	default:
		return Adjustment{}, ErrInvalidDeltaMode
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
