package advisory

import (
	"fmt"

	"finhealth/pkg/models"
)

// ComplianceIssue is one GST compliance finding.
type ComplianceIssue struct {
	IssueType string `json:"issue_type"`
	Message   string `json:"message"`
	Severity  string `json:"severity"`
}

// ComplianceResult is the compliance score with its findings. Each issue
// costs 20 points from 100, floored at 0.
type ComplianceResult struct {
	ComplianceScore int               `json:"compliance_score"`
	Issues          []ComplianceIssue `json:"issues"`
}

// CheckCompliance evaluates GST figures against revenue. A zero-valued
// GSTData is a legitimate input (no filing ingested yet) and is scored by
// the same rules.
func CheckCompliance(gst models.GSTData, revenue float64) ComplianceResult {
	var issues []ComplianceIssue

	if revenue > 0 {
		effectiveRate := gst.Collected / revenue

		if effectiveRate < 0.05 {
			issues = append(issues, ComplianceIssue{
				IssueType: "POSSIBLE_UNDER_REPORTING",
				Message:   fmt.Sprintf("Effective GST rate (%.2f%%) very low vs revenue.", effectiveRate*100),
				Severity:  "High",
			})
		} else if effectiveRate < 0.12 {
			issues = append(issues, ComplianceIssue{
				IssueType: "LOW_GST_RATIO",
				Message:   fmt.Sprintf("GST rate (%.2f%%) below expected range.", effectiveRate*100),
				Severity:  "Medium",
			})
		}

		if effectiveRate > 0.30 {
			issues = append(issues, ComplianceIssue{
				IssueType: "ABNORMALLY_HIGH_GST_RATIO",
				Message:   "GST rate unusually high vs revenue.",
				Severity:  "Medium",
			})
		}
	}

	netLiability := gst.OutputTax - gst.InputCredit

	if netLiability < 0 && gst.Paid > 0 {
		issues = append(issues, ComplianceIssue{
			IssueType: "NEGATIVE_NET_LIABILITY",
			Message:   "Negative net GST liability but GST paid.",
			Severity:  "Medium",
		})
	}

	if netLiability > 0 {
		if gst.Paid < netLiability*0.7 {
			issues = append(issues, ComplianceIssue{
				IssueType: "UNDERPAID_GST",
				Message:   "GST paid appears below calculated liability.",
				Severity:  "High",
			})
		} else if gst.Paid > netLiability*1.3 {
			issues = append(issues, ComplianceIssue{
				IssueType: "OVERPAID_GST",
				Message:   "GST paid appears higher than expected liability.",
				Severity:  "Low",
			})
		}
	}

	score := 100 - len(issues)*20
	if score < 0 {
		score = 0
	}

	return ComplianceResult{
		ComplianceScore: score,
		Issues:          issues,
	}
}
