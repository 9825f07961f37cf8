package level2

import "fmt"

// Product identifies a Level II data moment product.
type Product string

const (
	ProductReflectivity              Product = "ref"
	ProductVelocity                  Product = "vel"
	ProductSpectrumWidth             Product = "sw"
	ProductDifferentialReflectivity  Product = "zdr"
	ProductDifferentialPhase         Product = "phi"
	ProductCorrelationCoefficient    Product = "rho"
	ProductClutterFilterPowerRemoved Product = "cfp"
)

var productBlockTypes = map[Product]BlockType{
	ProductReflectivity:              BlockRef,
	ProductVelocity:                  BlockVel,
	ProductSpectrumWidth:             BlockSw,
	ProductDifferentialReflectivity:  BlockZdr,
	ProductDifferentialPhase:         BlockPhi,
	ProductCorrelationCoefficient:    BlockRho,
	ProductClutterFilterPowerRemoved: BlockCfp,
}

// BlockType returns the Message 31 data block the product's moments live in.
// ok is false for products with no moment block.
func (p Product) BlockType() (BlockType, bool) {
	bt, ok := productBlockTypes[p]
	return bt, ok
}

// ParseProduct validates a product name as used in URLs and CLI flags.
func ParseProduct(s string) (Product, error) {
	p := Product(s)
	if _, ok := productBlockTypes[p]; !ok {
		return "", fmt.Errorf("invalid product %q", s)
	}
	return p, nil
}
