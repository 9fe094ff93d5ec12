package grid

import (
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/smartfill/core"
)

var (
	colTypeTag  = "coltype"
	colTypeText = fmt.Sprintf("invalid column type; expected one of %v", ColumnTypes)

	fillSelTag  = "fillsel"
	fillSelText = "the selection must extend past the seed rows"
)

func errFillTooLarge(maxCount int) string {
	return fmt.Sprintf("cannot fill more than %d rows at once", maxCount)
}

// InitValidators registers the grid validation tags and their translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(colTypeTag, colTypeValidation)
	core.RegisterCustomTranslation(validate, translator, colTypeTag, colTypeText)

	validate.RegisterStructValidation(fillRequestStructValidation, FillRequest{})
	core.RegisterCustomTranslation(validate, translator, fillSelTag, fillSelText)
}

func colTypeValidation(fl validator.FieldLevel) bool {
	typ := ColumnType(fl.Field().String())
	for _, ct := range ColumnTypes {
		if typ == ct {
			return true
		}
	}
	return false
}

func fillRequestStructValidation(sl validator.StructLevel) {
	fr := sl.Current().Interface().(FillRequest)
	if fr.Selection.RowCount() <= fr.Seeds {
		sl.ReportError(fr.Selection, "selection", "Selection", fillSelTag, "")
	}
}
