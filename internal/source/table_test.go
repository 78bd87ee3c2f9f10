package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/cflow/internal/model"
)

func csvInput(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestParseRecurring(t *testing.T) {
	res, err := ParseRecurring(csvInput(
		`transaction,amount,frequency,on_date,precise_on_date,end_date,category,charge_to`,
		`Paycheck,"$2,500.00",biweekly,2024-01-05,True,,income,bank`,
		`Groceries,(400),monthly,2024-01-01,False,,food,cc`,
		`Car loan,(350.00),monthly,2024-01-20,True,2024-06-20,loan,bank`,
	), "rec.csv")
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)
	assert.Empty(t, res.Diagnostics)

	pay := res.Rows[0]
	assert.Equal(t, "Paycheck", pay.Transaction)
	assert.True(t, pay.Amount.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, model.Biweekly, pay.Frequency)
	assert.True(t, pay.PreciseOnDate)
	assert.Nil(t, pay.EndDate)
	assert.Equal(t, model.ChargeBank, pay.ChargeTo)
	assert.True(t, pay.OnDate.Equal(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))

	groceries := res.Rows[1]
	assert.True(t, groceries.Amount.Equal(decimal.NewFromInt(-400)))
	assert.False(t, groceries.PreciseOnDate)

	loan := res.Rows[2]
	require.NotNil(t, loan.EndDate)
	assert.True(t, loan.EndDate.Equal(time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)))
}

func TestParseRecurring_HeaderCaseAndExtraColumns(t *testing.T) {
	res, err := ParseRecurring(csvInput(
		`Transaction,Amount,Frequency,On_Date,Precise_On_Date,End_Date,Category,Charge_To,Notes`,
		`Rent,(1800),monthly,2024-01-01,true,,housing,bank,landlord`,
	), "rec.csv")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Rent", res.Rows[0].Transaction)
}

func TestParseRecurring_MissingColumns(t *testing.T) {
	_, err := ParseRecurring(csvInput(
		`transaction,amount,on_date`,
		`Rent,100,2024-01-01`,
	), "rec.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInputSchema))

	var se *model.SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "rec.csv", se.Table)
	assert.Contains(t, err.Error(), `"frequency"`)
	assert.Contains(t, err.Error(), `"charge_to"`)
}

func TestParseRecurring_MalformedRowsReportedTogether(t *testing.T) {
	_, err := ParseRecurring(csvInput(
		`transaction,amount,frequency,on_date,precise_on_date,end_date,category,charge_to`,
		`Rent,lots,monthly,2024-01-01,true,,housing,bank`,
		`Gym,(40),fortnightly,2024-01-01,true,,health,cc`,
		`Phone,(60),monthly,2024-01-01,maybe,,utilities,cc`,
	), "rec.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInputSchema))
	assert.Contains(t, err.Error(), "row 1")
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "row 3")
}

func TestParseRecurring_BadDatesSkippedWithDiagnostic(t *testing.T) {
	res, err := ParseRecurring(csvInput(
		`transaction,amount,frequency,on_date,precise_on_date,end_date,category,charge_to`,
		`Rent,(1800),monthly,someday,true,,housing,bank`,
		`Gym,(40),monthly,2024-01-03,true,2024-02-30,health,cc`,
		`Phone,(60),monthly,2024-01-09,true,,utilities,cc`,
	), "rec.csv")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Phone", res.Rows[0].Transaction)

	diags := res.Diagnostics.OfKind(model.DiagDateParse)
	require.Len(t, diags, 2)
	assert.Equal(t, 1, diags[0].Row)
	assert.Equal(t, "Rent", diags[0].Transaction)
	assert.Equal(t, 2, diags[1].Row)
	assert.Equal(t, "2024-02-30", diags[1].Value)
}

func TestParseSupplemental(t *testing.T) {
	res, err := ParseSupplemental(csvInput(
		`date,transaction_amount,transaction,category,charge_to`,
		`2024-03-02,($600.00),Flights,travel,cc`,
		`2024-03-15,"$1,200",Bonus,income,bank`,
	), "supp.csv")
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)

	ev := res.Rows[0].Event()
	assert.True(t, ev.Amount.Equal(decimal.NewFromInt(-600)))
	assert.Equal(t, model.ChargeCC, ev.ChargeTo)
	assert.True(t, ev.Date.Equal(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))
}

func TestParseSupplemental_MissingChargeTo(t *testing.T) {
	_, err := ParseSupplemental(csvInput(
		`date,transaction_amount,transaction,category,charge_to`,
		`2024-03-02,(600),Flights,travel,`,
	), "supp.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInputSchema))
	assert.Contains(t, err.Error(), "ChargeTo")
}

func TestParseBalances(t *testing.T) {
	res, err := ParseBalances(csvInput(
		`account,type,current_balance,statement_balance`,
		`Checking,bank,"$1,500.00",`,
		`Savings,Bank,$500,`,
		`Visa,cc,$500.00,$300.00`,
	), "bal.csv")
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)

	snap := model.SnapshotFromBalances(res.Rows)
	assert.True(t, snap.BankTotal.Equal(decimal.NewFromInt(2000)))
	assert.True(t, snap.CCStatementTotal.Equal(decimal.NewFromInt(300)))
	assert.True(t, snap.CCCurrentTotal.Equal(decimal.NewFromInt(500)))
}

func TestParseBalances_UnknownType(t *testing.T) {
	_, err := ParseBalances(csvInput(
		`type,current_balance,statement_balance`,
		`brokerage,100,`,
	), "bal.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInputSchema))
}

func TestFindLatest(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, string(KindRecurring))
	require.NoError(t, os.MkdirAll(sub, 0o750))
	for _, name := range []string{"20240101_rec.csv", "20240301_rec.csv", "20240201_rec.csv", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(sub, name), []byte("x\n"), 0o600))
	}

	df, err := FindLatest(dir, KindRecurring)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(sub, "20240301_rec.csv"), df.Path)
	assert.Equal(t, KindRecurring, df.Kind)
	assert.Equal(t, int64(2), df.SizeBytes)

	_, err = FindLatest(dir, KindBalances)
	assert.True(t, errors.Is(err, ErrNoFiles))
}

func TestScanDir_SkipsMissingTables(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, string(KindBalances))
	require.NoError(t, os.MkdirAll(sub, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.csv"), []byte("x\n"), 0o600))

	found, err := ScanDir(dir)
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Contains(t, found, KindBalances)
}
