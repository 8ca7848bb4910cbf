// Package xlsx записывает сводный список покупок в книгу Excel.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/magabrotheeeer/foodgram/internal/models"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SheetName имя листа со списком покупок.
const SheetName = "Список покупок"

// Header содержит заголовки столбцов.
var Header = []any{"Название ингредиента", "Единица измерения", "Количество в рецепте"}

// WriteShoppingList пишет строки списка покупок в w.
// Первая строка содержит заголовок, далее по строке на ингредиент.
func WriteShoppingList(w io.Writer, items []models.ShoppingItem) error {
	const op = "xlsx.WriteShoppingList"
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &Header); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		row := []any{item.Name, item.MeasurementUnit, item.Amount}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := f.SetColWidth(SheetName, "A", "A", 40); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := f.SetColWidth(SheetName, "B", "C", 20); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
