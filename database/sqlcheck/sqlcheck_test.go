package sqlcheck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		wantErr bool
	}{
		{
			name: "report query",
			sql: "SELECT c.category_name, COUNT(s.sale_id) as total_sales FROM sales s " +
				"INNER JOIN products p ON s.product_id = p.product_id " +
				"INNER JOIN categories c ON p.category_id = c.category_id " +
				"GROUP BY c.category_name ORDER BY total_sales DESC",
		},
		{
			name: "placeholders and limit",
			sql:  "SELECT product_name FROM products WHERE price > ? AND category_id IN (?, ?) LIMIT 5",
		},
		{
			name: "update",
			sql:  "UPDATE products SET price = ? WHERE product_id = ?",
		},
		{
			name:    "missing FROM table",
			sql:     "SELECT * FROM",
			wantErr: true,
		},
		{
			name:    "dangling join",
			sql:     "SELECT * FROM sales s INNER JOIN ON s.product_id = p.product_id",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.sql)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var syntaxErr *SyntaxError
			require.True(t, errors.As(err, &syntaxErr))
			assert.Equal(t, tt.sql, syntaxErr.SQL)
			assert.Contains(t, err.Error(), "invalid SQL syntax")
		})
	}
}

func TestCheckSelect(t *testing.T) {
	assert.NoError(t, CheckSelect("SELECT * FROM sales LIMIT 10 OFFSET 20"))

	err := CheckSelect("DELETE FROM sales WHERE sale_id = 1")
	assert.ErrorIs(t, err, ErrNotSelect)

	err = CheckSelect("SELEC * FROM sales")
	var syntaxErr *SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}
