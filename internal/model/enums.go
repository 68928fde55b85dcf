package model

// ObjectType is the value of the top-level "object" field.
type ObjectType string

const (
	ObjectBlock    ObjectType = "block"
	ObjectDatabase ObjectType = "database"
	ObjectPage     ObjectType = "page"
	ObjectUser     ObjectType = "user"
	ObjectList     ObjectType = "list"
)

// Color is a foreground or background color name used by annotations and
// select options.
type Color string

const (
	ColorDefault Color = "default"
	ColorGray    Color = "gray"
	ColorBrown   Color = "brown"
	ColorOrange  Color = "orange"
	ColorYellow  Color = "yellow"
	ColorGreen   Color = "green"
	ColorBlue    Color = "blue"
	ColorPurple  Color = "purple"
	ColorPink    Color = "pink"
	ColorRed     Color = "red"

	ColorGrayBackground   Color = "gray_background"
	ColorBrownBackground  Color = "brown_background"
	ColorOrangeBackground Color = "orange_background"
	ColorYellowBackground Color = "yellow_background"
	ColorGreenBackground  Color = "green_background"
	ColorBlueBackground   Color = "blue_background"
	ColorPurpleBackground Color = "purple_background"
	ColorPinkBackground   Color = "pink_background"
	ColorRedBackground    Color = "red_background"
)

var knownColors = setOf(
	ColorDefault, ColorGray, ColorBrown, ColorOrange, ColorYellow, ColorGreen,
	ColorBlue, ColorPurple, ColorPink, ColorRed,
	ColorGrayBackground, ColorBrownBackground, ColorOrangeBackground,
	ColorYellowBackground, ColorGreenBackground, ColorBlueBackground,
	ColorPurpleBackground, ColorPinkBackground, ColorRedBackground,
)

// NumberFormat is the display format of a number property.
type NumberFormat string

const (
	NumberFormatNumber           NumberFormat = "number"
	NumberFormatNumberWithCommas NumberFormat = "number_with_commas"
	NumberFormatPercent          NumberFormat = "percent"
	NumberFormatDollar           NumberFormat = "dollar"
	NumberFormatCanadianDollar   NumberFormat = "canadian_dollar"
	NumberFormatEuro             NumberFormat = "euro"
	NumberFormatPound            NumberFormat = "pound"
	NumberFormatYen              NumberFormat = "yen"
	NumberFormatRuble            NumberFormat = "ruble"
	NumberFormatRupee            NumberFormat = "rupee"
	NumberFormatWon              NumberFormat = "won"
	NumberFormatYuan             NumberFormat = "yuan"
	NumberFormatReal             NumberFormat = "real"
	NumberFormatLira             NumberFormat = "lira"
	NumberFormatRupiah           NumberFormat = "rupiah"
	NumberFormatFranc            NumberFormat = "franc"
	NumberFormatHongKongDollar   NumberFormat = "hong_kong_dollar"
	NumberFormatNewZealandDollar NumberFormat = "new_zealand_dollar"
	NumberFormatKrona            NumberFormat = "krona"
	NumberFormatNorwegianKrone   NumberFormat = "norwegian_krone"
	NumberFormatMexicanPeso      NumberFormat = "mexican_peso"
	NumberFormatRand             NumberFormat = "rand"
	NumberFormatNewTaiwanDollar  NumberFormat = "new_taiwan_dollar"
	NumberFormatDanishKrone      NumberFormat = "danish_krone"
	NumberFormatZloty            NumberFormat = "zloty"
	NumberFormatBaht             NumberFormat = "baht"
	NumberFormatForint           NumberFormat = "forint"
	NumberFormatKoruna           NumberFormat = "koruna"
	NumberFormatShekel           NumberFormat = "shekel"
	NumberFormatChileanPeso      NumberFormat = "chilean_peso"
	NumberFormatPhilippinePeso   NumberFormat = "philippine_peso"
	NumberFormatDirham           NumberFormat = "dirham"
	NumberFormatColombianPeso    NumberFormat = "colombian_peso"
	NumberFormatRiyal            NumberFormat = "riyal"
	NumberFormatRinggit          NumberFormat = "ringgit"
	NumberFormatLeu              NumberFormat = "leu"
)

var knownNumberFormats = setOf(
	NumberFormatNumber, NumberFormatNumberWithCommas, NumberFormatPercent,
	NumberFormatDollar, NumberFormatCanadianDollar, NumberFormatEuro,
	NumberFormatPound, NumberFormatYen, NumberFormatRuble, NumberFormatRupee,
	NumberFormatWon, NumberFormatYuan, NumberFormatReal, NumberFormatLira,
	NumberFormatRupiah, NumberFormatFranc, NumberFormatHongKongDollar,
	NumberFormatNewZealandDollar, NumberFormatKrona, NumberFormatNorwegianKrone,
	NumberFormatMexicanPeso, NumberFormatRand, NumberFormatNewTaiwanDollar,
	NumberFormatDanishKrone, NumberFormatZloty, NumberFormatBaht,
	NumberFormatForint, NumberFormatKoruna, NumberFormatShekel,
	NumberFormatChileanPeso, NumberFormatPhilippinePeso, NumberFormatDirham,
	NumberFormatColombianPeso, NumberFormatRiyal, NumberFormatRinggit,
	NumberFormatLeu,
)

// RollupFunction is the aggregation applied by a rollup property.
type RollupFunction string

// RollupFunction constants for rollup aggregation functions.
const (
	RollupCountAll          RollupFunction = "count_all"
	RollupCount             RollupFunction = "count"
	RollupCountValues       RollupFunction = "count_values"
	RollupCountUniqueValues RollupFunction = "count_unique_values"
	RollupCountEmpty        RollupFunction = "count_empty"
	RollupCountNotEmpty     RollupFunction = "count_not_empty"
	RollupEmpty             RollupFunction = "empty"
	RollupNotEmpty          RollupFunction = "not_empty"
	RollupPercentChecked    RollupFunction = "percent_checked"
	RollupPercentUnchecked  RollupFunction = "percent_unchecked"
	RollupPercentEmpty      RollupFunction = "percent_empty"
	RollupPercentNotEmpty   RollupFunction = "percent_not_empty"
	RollupChecked           RollupFunction = "checked"
	RollupUnchecked         RollupFunction = "unchecked"
	RollupSum               RollupFunction = "sum"
	RollupAverage           RollupFunction = "average"
	RollupMedian            RollupFunction = "median"
	RollupMin               RollupFunction = "min"
	RollupMax               RollupFunction = "max"
	RollupRange             RollupFunction = "range"
	RollupEarliestDate      RollupFunction = "earliest_date"
	RollupLatestDate        RollupFunction = "latest_date"
	RollupDateRange         RollupFunction = "date_range"
	RollupShowOriginal      RollupFunction = "show_original"
	RollupShowUnique        RollupFunction = "show_unique"
)

var knownRollupFunctions = setOf(
	RollupCountAll, RollupCount, RollupCountValues, RollupCountUniqueValues,
	RollupCountEmpty, RollupCountNotEmpty, RollupEmpty, RollupNotEmpty,
	RollupPercentChecked, RollupPercentUnchecked, RollupPercentEmpty,
	RollupPercentNotEmpty, RollupChecked, RollupUnchecked, RollupSum,
	RollupAverage, RollupMedian, RollupMin, RollupMax, RollupRange,
	RollupEarliestDate, RollupLatestDate, RollupDateRange, RollupShowOriginal,
	RollupShowUnique,
)

func setOf[T ~string](vals ...T) map[T]struct{} {
	m := make(map[T]struct{}, len(vals))
	for _, v := range vals {
		m[v] = struct{}{}
	}
	return m
}

// enumValue reads a required string under key and checks it against known.
func enumValue[T ~string](f fields, key string, known map[T]struct{}) (T, error) {
	s, err := f.str(key)
	if err != nil {
		return "", err
	}
	v := T(s)
	if _, ok := known[v]; !ok {
		return "", malformed(key, "unknown value %q", s)
	}
	return v, nil
}

// optEnumValue is enumValue for optional fields.
func optEnumValue[T ~string](f fields, key string, known map[T]struct{}) (*T, error) {
	if _, ok := f.value(key); !ok {
		return nil, nil
	}
	v, err := enumValue(f, key, known)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
