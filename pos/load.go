package pos

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/soderasen-au/go-common/util"
)

// CSV dump loaders for the back-office datasets. Dumps come straight out of
// the store's export screens, so be lenient about quoting and ragged rows.

func setLenientCSVReader() {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.LazyQuotes = true
		r.FieldsPerRecord = -1
		return r
	})
}

func loadCSVFile(file string, out interface{}) *util.Result {
	f, err := os.Open(file)
	if err != nil {
		return util.Error("OpenFile", err)
	}
	defer f.Close()

	setLenientCSVReader()
	if err = gocsv.UnmarshalFile(f, out); err != nil {
		return util.Error("UnmarshalCsvFile", err)
	}
	return nil
}

func LoadSales(file string) ([]Sale, *util.Result) {
	ret := make([]Sale, 0)
	if res := loadCSVFile(file, &ret); res != nil {
		return nil, res.With("LoadSales")
	}
	return ret, nil
}

func LoadDamages(file string) ([]Damage, *util.Result) {
	ret := make([]Damage, 0)
	if res := loadCSVFile(file, &ret); res != nil {
		return nil, res.With("LoadDamages")
	}
	return ret, nil
}

func LoadReturns(file string) ([]Return, *util.Result) {
	ret := make([]Return, 0)
	if res := loadCSVFile(file, &ret); res != nil {
		return nil, res.With("LoadReturns")
	}
	return ret, nil
}

func LoadBottleMovements(file string) ([]BottleMovement, *util.Result) {
	ret := make([]BottleMovement, 0)
	if res := loadCSVFile(file, &ret); res != nil {
		return nil, res.With("LoadBottleMovements")
	}
	return ret, nil
}

func LoadOtherIncome(file string) ([]OtherIncome, *util.Result) {
	ret := make([]OtherIncome, 0)
	if res := loadCSVFile(file, &ret); res != nil {
		return nil, res.With("LoadOtherIncome")
	}
	return ret, nil
}

func LoadOtherExpenses(file string) ([]OtherExpense, *util.Result) {
	ret := make([]OtherExpense, 0)
	if res := loadCSVFile(file, &ret); res != nil {
		return nil, res.With("LoadOtherExpenses")
	}
	return ret, nil
}
