package validator

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"tracker/constants"
	"tracker/errors"
	"tracker/models"

	playground "github.com/go-playground/validator/v10"
)

var (
	structValidator     *playground.Validate
	structValidatorOnce sync.Once
)

func get() *playground.Validate {
	structValidatorOnce.Do(func() {
		structValidator = playground.New()
	})
	return structValidator
}

// ValidateStruct validate struct theo tag `validate`
func ValidateStruct(v interface{}) error {
	if err := get().Struct(v); err != nil {
		var fields []string
		if verrs, ok := err.(playground.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
			}
			return errors.NewAppError(errors.ErrCodeValidation, "Dữ liệu không hợp lệ: "+strings.Join(fields, ", "), err)
		}
		return errors.NewAppError(errors.ErrCodeValidation, "Dữ liệu không hợp lệ", err)
	}
	return nil
}

// ValidateCatalog validate danh sách checklist
func ValidateCatalog(catalog *models.Catalog) error {
	if catalog == nil {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Catalog không được để trống", nil)
	}

	if len(catalog.Daily) != constants.DailyItemCount {
		return errors.NewAppError(errors.ErrCodeValidation,
			fmt.Sprintf("Danh sách daily phải có đúng %d mục, hiện có %d", constants.DailyItemCount, len(catalog.Daily)), nil)
	}

	seen := make(map[string]bool)
	checkItem := func(item models.ChecklistItem) error {
		if item.ID == "" {
			return errors.NewAppError(errors.ErrCodeRequiredField, "Id của mục checklist không được để trống", nil)
		}
		if !isValidID(item.ID) {
			return errors.NewAppError(errors.ErrCodeInvalidFormat, "Id không hợp lệ: "+item.ID, nil)
		}
		if seen[item.ID] {
			return errors.NewAppError(errors.ErrCodeValidation, "Id bị trùng: "+item.ID, nil)
		}
		seen[item.ID] = true
		return nil
	}

	for _, item := range catalog.Daily {
		if err := checkItem(item); err != nil {
			return err
		}
	}

	phaseIDs := make(map[string]bool)
	for _, phase := range catalog.Phases {
		if phase.ID == "" {
			return errors.NewAppError(errors.ErrCodeRequiredField, "Id của phase không được để trống", nil)
		}
		if !isValidID(phase.ID) {
			return errors.NewAppError(errors.ErrCodeInvalidFormat, "Id phase không hợp lệ: "+phase.ID, nil)
		}
		if phaseIDs[phase.ID] {
			return errors.NewAppError(errors.ErrCodeValidation, "Id phase bị trùng: "+phase.ID, nil)
		}
		phaseIDs[phase.ID] = true

		if strings.TrimSpace(phase.Title) == "" {
			return errors.NewAppError(errors.ErrCodeRequiredField, "Tên phase không được để trống: "+phase.ID, nil)
		}
		for _, item := range phase.Items {
			if err := checkItem(item); err != nil {
				return err
			}
		}
	}

	return nil
}

var idRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// isValidID kiểm tra id checklist hợp lệ
func isValidID(id string) bool {
	return idRegex.MatchString(id)
}
