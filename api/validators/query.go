package validators

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/partcustody/pkg/enums"
	pkgerrors "github.com/angelmondragon/partcustody/pkg/errors"
)

// ParseOrderFilter reads the list view filter from ?filter=. Missing means ALL.
func ParseOrderFilter(r *http.Request) (enums.OrderFilter, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("filter"))
	filter, err := enums.ParseOrderFilter(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid filter").WithDetails(map[string]any{
			"field":   "filter",
			"allowed": []enums.OrderFilter{enums.OrderFilterAll, enums.OrderFilterReadyForPickup, enums.OrderFilterPickedUp, enums.OrderFilterReadyForReturn},
		})
	}
	return filter, nil
}
