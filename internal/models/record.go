package models

// CSV column names of the local government code list.
const (
	ColumnCode                 = "団体コード"
	ColumnPrefectureName       = "都道府県名（漢字）"
	ColumnMunicipalityName     = "市区町村名（漢字）"
	ColumnPrefectureNameKana   = "都道府県名（カナ）"
	ColumnMunicipalityNameKana = "市区町村名（カナ）"
)

// CodeLength is the width of a normalized local government code.
const CodeLength = 6

// RegionType distinguishes prefectures from municipalities in the regions table.
type RegionType string

const (
	RegionTypePrefecture   RegionType = "prefecture"
	RegionTypeMunicipality RegionType = "municipality"
)

// Record is a single row of a local government code snapshot.
type Record struct {
	Code                 string `csv:"団体コード"`
	PrefectureName       string `csv:"都道府県名（漢字）"`
	MunicipalityName     string `csv:"市区町村名（漢字）"`
	PrefectureNameKana   string `csv:"都道府県名（カナ）"`
	MunicipalityNameKana string `csv:"市区町村名（カナ）"`
}

// IsMunicipality reports whether the record names a municipality rather than a prefecture.
func (r Record) IsMunicipality() bool {
	return r.MunicipalityName != ""
}

// RegionType derives the region type from the presence of a municipality name.
func (r Record) RegionType() RegionType {
	if r.IsMunicipality() {
		return RegionTypeMunicipality
	}
	return RegionTypePrefecture
}

// Name returns the display name stored in regions.name.
func (r Record) Name() string {
	if r.IsMunicipality() {
		return r.MunicipalityName
	}
	return r.PrefectureName
}

// NameKana returns the reading stored in regions.name_kana.
func (r Record) NameKana() string {
	if r.IsMunicipality() {
		return r.MunicipalityNameKana
	}
	return r.PrefectureNameKana
}

// PrefecturePrefix is the two-digit prefecture part of the code.
func (r Record) PrefecturePrefix() string {
	if len(r.Code) < 2 {
		return r.Code
	}
	return r.Code[:2]
}
