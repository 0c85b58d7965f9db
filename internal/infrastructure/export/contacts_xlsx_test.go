package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/jhoicas/contacts-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteContacts(t *testing.T) {
	list := []*entity.Contact{
		{
			Name:             "Ferretería El Tornillo",
			Types:            []entity.ContactType{entity.ContactTypeClient, entity.ContactTypeProvider},
			IDType:           entity.IDTypeNIT,
			IDNumber:         "900.123.456",
			DV:               "8",
			PaymentTermsDays: 30,
			CreditLimit:      decimal.NewNullDecimal(decimal.RequireFromString("1500000.50")),
			BillingAddress:   &entity.Address{City: "Bogotá"},
			IsActive:         true,
			CreatedAt:        time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
		},
		{Name: "Ana", Types: []entity.ContactType{entity.ContactTypeClient}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewXLSXWriter().WriteContacts(&buf, list))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ContactsHeader, rows[0])
	assert.Equal(t, "Ferretería El Tornillo", rows[1][0])
	assert.Equal(t, "client, provider", rows[1][1])
	assert.Equal(t, "900.123.456", rows[1][3])
	assert.Equal(t, "8", rows[1][4])
	assert.Equal(t, "Bogotá", rows[1][11])
	assert.Equal(t, "Sí", rows[1][12])
	assert.Equal(t, "2026-01-02 03:04", rows[1][13])
	assert.Equal(t, "Ana", rows[2][0])
	assert.Equal(t, []string{sheetName}, f.GetSheetList())
}

func TestWriteContacts_ListaVacia(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXWriter().WriteContacts(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
