package settings

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/marivelle/catalog-backend/pkg/db/models"
	pkgerrors "github.com/marivelle/catalog-backend/pkg/errors"
)

// Truthy applies lenient truthiness to a raw JSON scalar: booleans stand for
// themselves, non-empty strings and non-zero numbers are true, null is false.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

// EncodeValue re-encodes a raw JSON value into the stored string form for the
// declared value type. Boolean settings store "true"/"false" by truthiness;
// integer settings store the decimal string of the truncated value; anything
// else stringifies, with null passing through as null.
func EncodeValue(valueType string, value any) (*string, error) {
	switch valueType {
	case models.SettingTypeBoolean:
		s := "false"
		if Truthy(value) {
			s = "true"
		}
		return &s, nil

	case models.SettingTypeInteger:
		n, err := toInt64(value)
		if err != nil {
			return nil, err
		}
		s := strconv.FormatInt(n, 10)
		return &s, nil

	default:
		return stringify(value)
	}
}

// DecodeValue converts a stored setting into its typed form for public
// payloads. Unparseable integers decode as 0.
func DecodeValue(setting models.SiteSetting) any {
	switch setting.ValueType {
	case models.SettingTypeBoolean:
		return setting.Value != nil && *setting.Value == "true"
	case models.SettingTypeInteger:
		if setting.Value == nil {
			return int64(0)
		}
		n, err := strconv.ParseInt(*setting.Value, 10, 64)
		if err != nil {
			return int64(0)
		}
		return n
	default:
		if setting.Value == nil {
			return nil
		}
		return *setting.Value
	}
}

func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case float64:
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("value %q is not an integer", v))
		}
		return n, nil
	default:
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "value is not an integer")
	}
}

func stringify(value any) (*string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return &v, nil
	case bool:
		s := strconv.FormatBool(v)
		return &s, nil
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		return &s, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "value is not storable")
		}
		s := string(data)
		return &s, nil
	}
}
