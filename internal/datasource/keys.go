package datasource

import (
	"strings"
	"unicode"

	"github.com/seenimoa/finratios/pkg/models"
)

// annualPrefix is prepended to every line item key in timeseries requests.
const annualPrefix = "annual"

var incomeKeys = []string{
	"TotalRevenue", "OperatingRevenue", "CostOfRevenue", "GrossProfit",
	"OperatingExpense", "SellingGeneralAndAdministration", "ResearchAndDevelopment",
	"OperatingIncome", "TotalExpenses", "InterestIncome", "InterestExpense",
	"NetNonOperatingInterestIncomeExpense", "OtherIncomeExpense", "PretaxIncome",
	"TaxProvision", "TaxRateForCalcs", "NetIncomeContinuousOperations",
	"NetIncomeIncludingNoncontrollingInterests", "MinorityInterests", "NetIncome",
	"NetIncomeCommonStockholders", "NormalizedIncome", "BasicEPS", "DilutedEPS",
	"BasicAverageShares", "DilutedAverageShares", "EBIT", "EBITDA",
	"NormalizedEBITDA", "ReconciledDepreciation",
}

var balanceKeys = []string{
	"TotalAssets", "CurrentAssets", "CashAndCashEquivalents",
	"CashCashEquivalentsAndShortTermInvestments", "Receivables", "Inventory",
	"TotalNonCurrentAssets", "NetPPE", "GoodwillAndOtherIntangibleAssets",
	"InvestmentsAndAdvances", "TotalLiabilitiesNetMinorityInterest",
	"CurrentLiabilities", "PayablesAndAccruedExpenses", "CurrentDebt",
	"TotalNonCurrentLiabilitiesNetMinorityInterest", "LongTermDebt", "TotalDebt",
	"NetDebt", "StockholdersEquity", "CommonStockEquity", "CommonStock",
	"RetainedEarnings", "MinorityInterest", "TotalEquityGrossMinorityInterest",
	"TotalCapitalization", "WorkingCapital", "InvestedCapital", "TangibleBookValue",
	"ShareIssued", "OrdinarySharesNumber",
}

var cashFlowKeys = []string{
	"OperatingCashFlow", "InvestingCashFlow", "FinancingCashFlow", "FreeCashFlow",
	"CapitalExpenditure", "BeginningCashPosition", "EndCashPosition", "ChangesInCash",
	"DepreciationAndAmortization", "ChangeInWorkingCapital",
	"NetIncomeFromContinuingOperations", "CashDividendsPaid", "IssuanceOfDebt",
	"RepaymentOfDebt", "RepurchaseOfCapitalStock", "IncomeTaxPaidSupplementalData",
	"InterestPaidSupplementalData",
}

// statementKeys returns the timeseries type keys requested for a statement.
func statementKeys(kind models.StatementKind) []string {
	var base []string
	switch kind {
	case models.StatementIncome:
		base = incomeKeys
	case models.StatementBalance:
		base = balanceKeys
	case models.StatementCashFlow:
		base = cashFlowKeys
	}
	keys := make([]string, len(base))
	for i, k := range base {
		keys[i] = annualPrefix + k
	}
	return keys
}

// lineItemLabel turns a timeseries key into a display label,
// e.g. "annualTotalRevenue" -> "Total Revenue", "annualNetPPE" -> "Net PPE".
func lineItemLabel(key string) string {
	return camelToTitle(strings.TrimPrefix(key, annualPrefix))
}

// camelToTitle splits a CamelCase identifier into space separated words,
// keeping runs of capitals (acronyms) together.
func camelToTitle(s string) string {
	runes := []rune(s)
	var sb strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				sb.WriteByte(' ')
			}
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
