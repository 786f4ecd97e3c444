package randutil

import (
	"math/big"

	"github.com/battila7/cryptid-native/status"
	"github.com/fentec-project/gofe/sample"
)

// RandomInRange uniformly samples an integer in [min, max), the same
// sample.NewUniformRange idiom the teacher repo uses for every "draw x in
// [a,b)" step (VOABE.SetUp, ECPABE.Setup, ECPABE.KeyGen).
func RandomInRange(min, max *big.Int) (*big.Int, error) {
	sampler := sample.NewUniformRange(min, max)
	v, err := sampler.Sample()
	if err != nil {
		return nil, status.Wrap(status.PointGenFailed, err)
	}
	return v, nil
}
