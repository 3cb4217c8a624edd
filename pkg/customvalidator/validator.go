// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"github.com/go-playground/validator/v10"

	"asset-system/pkg/assetnumber"
)

// RegisterCustomValidations регистрирует кастомные правила валидации
// в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate, assetPrefix string) error {
	// asset_number: строгий формат PREFIX-NNNN (ровно 4 цифры)
	if err := v.RegisterValidation("asset_number", isAssetNumber(assetPrefix)); err != nil {
		return err
	}
	return nil
}

func isAssetNumber(prefix string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return assetnumber.IsValid(prefix, fl.Field().String())
	}
}
