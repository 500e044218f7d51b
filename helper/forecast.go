package helper

import (
	"bytes"
	"fmt"
	"math"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/linear_models"
)

// DailyHours is one observed day of total worked hours.
type DailyHours struct {
	Weekday int
	Hours   float64
}

// ForecastHours fits a linear regression of worked hours on the weekday and
// predicts the hours for one weekday. Used to pre-fill workforce plans from
// recent attendance history.
func ForecastHours(history []DailyHours, weekday int) (float64, error) {
	if len(history) < 2 {
		return 0, fmt.Errorf("no training data available")
	}

	// The last CSV column is what golearn predicts.
	var csvBuffer bytes.Buffer
	csvBuffer.WriteString("weekday,hours\n")
	for _, day := range history {
		csvBuffer.WriteString(fmt.Sprintf("%d,%.2f\n", day.Weekday, day.Hours))
	}

	instances, err := base.ParseCSVToInstances(csvBuffer.String(), true)
	if err != nil {
		return 0, fmt.Errorf("failed to parse training data: %w", err)
	}

	model := linear_models.NewLinearRegression()
	if err := model.Fit(instances); err != nil {
		return 0, fmt.Errorf("failed to train model: %w", err)
	}

	predCSV := fmt.Sprintf("weekday,hours\n%d,0.0\n", weekday)
	predInstances, err := base.ParseCSVToInstances(predCSV, true)
	if err != nil {
		return 0, fmt.Errorf("failed to parse prediction data: %w", err)
	}

	predictions, err := model.Predict(predInstances)
	if err != nil {
		return 0, fmt.Errorf("prediction failed: %w", err)
	}

	classAttrs := predictions.AllClassAttributes()
	if len(classAttrs) == 0 {
		return 0, fmt.Errorf("no class attribute in predictions")
	}

	classSpec := base.ResolveAttributes(predictions, classAttrs)[0]
	predicted := base.UnpackBytesToFloat(predictions.Get(classSpec, 0))

	if predicted < 0 {
		predicted = 0
	}
	return math.Round(predicted*10) / 10, nil
}
