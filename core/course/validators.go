package course

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/gurumantra/backend/core"
)

var (
	blockTypeTag  = "blocktype"
	blockTypeText = "unknown content block type"

	blockTextTag  = "blocktext"
	blockTextText = "text is required for this block type"

	blockAssetTag  = "blockasset"
	blockAssetText = "one of asset_id or url is required for this block type"
)

// InitValidators registers the content block validations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(blockTypeTag, blockTypeValidation)
	core.RegisterCustomTranslation(validate, translator, blockTypeTag, blockTypeText)

	validate.RegisterStructValidation(blockStructValidation, Block{})
	core.RegisterCustomTranslation(validate, translator, blockTextTag, blockTextText)
	core.RegisterCustomTranslation(validate, translator, blockAssetTag, blockAssetText)
}

// blockTypeValidation only allows the known BlockTypes.
func blockTypeValidation(fl validator.FieldLevel) bool {
	val := BlockType(fl.Field().String())
	for _, bt := range BlockTypes {
		if val == bt {
			return true
		}
	}
	return false
}

// blockStructValidation checks that every block carries the payload its type needs.
func blockStructValidation(sl validator.StructLevel) {
	blk, ok := sl.Current().Interface().(Block)
	if !ok {
		return
	}
	switch {
	case blk.Type.IsMedia():
		if core.CleanString(blk.AssetID) == "" && core.CleanString(blk.URL) == "" {
			sl.ReportError(blk.AssetID, "asset_id", "AssetID", blockAssetTag, "")
		}
	case blk.Type == BlockSectionTitle || blk.Type == BlockHeading:
		if core.CleanString(blk.Text) == "" {
			sl.ReportError(blk.Text, "text", "Text", blockTextTag, "")
		}
	}
}
