package capitalization

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UUIDRegister assigns register identifiers locally. It stands in for
// the corporate fixed-asset system.
type UUIDRegister struct{}

func (UUIDRegister) CreateAsset(name string, amount decimal.Decimal) (string, string, error) {
	id := uuid.NewString()
	return id, "FA-" + strings.ToUpper(id[:8]), nil
}
