package report

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/jung-kurt/gofpdf"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
)

const (
	brandName = "PREVUE.AI"
	pageWidth = 210.0
	margin    = 15.0
)

var (
	brandColor = [3]int{41, 37, 96}
	lightGray  = [3]int{245, 245, 248}
	midGray    = [3]int{110, 110, 120}
)

// renderFeedbackPDF lays out the full interview report on A4 pages
func renderFeedbackPDF(user *entities.User, session *entities.InterviewSession) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	writeHeader(pdf, user, session)
	writeScoreBanner(pdf, session)
	writeMetricColumns(pdf, session)
	writeQuestionBlocks(pdf, session)
	writeSummary(pdf, session)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(pdf *gofpdf.Fpdf, user *entities.User, session *entities.InterviewSession) {
	pdf.SetFillColor(brandColor[0], brandColor[1], brandColor[2])
	pdf.Rect(0, 0, pageWidth, 34, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(margin, 8)
	pdf.CellFormat(0, 10, brandName, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetX(margin)
	subtitle := fmt.Sprintf("Interview Feedback Report  |  %s  |  %s %s", session.Role, session.Mode, session.Difficulty)
	pdf.CellFormat(0, 6, subtitle, "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(40)
	pdf.SetFont("Helvetica", "", 10)
	date := session.CreatedAt
	if session.FinalizedAt != nil {
		date = *session.FinalizedAt
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Candidate: %s", user.Name), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", date.Format("2 January 2006")), "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func writeScoreBanner(pdf *gofpdf.Fpdf, session *entities.InterviewSession) {
	pdf.SetFillColor(lightGray[0], lightGray[1], lightGray[2])
	y := pdf.GetY()
	pdf.Rect(margin, y, pageWidth-2*margin, 18, "F")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(margin+4, y+5)
	pdf.CellFormat(60, 8, "Overall Score", "", 0, "L", false, 0, "")

	pdf.SetTextColor(brandColor[0], brandColor[1], brandColor[2])
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 8, fmt.Sprintf("%.0f%%", session.TotalScore*10), "", 1, "R", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(y + 22)
}

func writeMetricColumns(pdf *gofpdf.Fpdf, session *entities.InterviewSession) {
	colWidth := (pageWidth - 2*margin) / 2

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(colWidth, 8, "Technical", "", 0, "L", false, 0, "")
	pdf.CellFormat(colWidth, 8, "Behavioral", "", 1, "L", false, 0, "")

	technical := []struct {
		label string
		value float64
	}{
		{"Correctness", session.OverallCorrectness * 10},
		{"Depth", session.OverallDepth * 10},
		{"Structure", session.OverallStructure * 10},
	}
	behavioral := []struct {
		label string
		value float64
	}{
		{"Eye Contact", session.EyeContact},
		{"Confidence", session.Confidence},
		{"Stability", session.Stability},
		{"Professionalism", session.Professionalism},
	}

	pdf.SetFont("Helvetica", "", 10)
	rows := len(technical)
	if len(behavioral) > rows {
		rows = len(behavioral)
	}
	for i := 0; i < rows; i++ {
		if i < len(technical) {
			pdf.CellFormat(colWidth*0.6, 6, technical[i].label, "", 0, "L", false, 0, "")
			pdf.CellFormat(colWidth*0.4, 6, fmt.Sprintf("%.0f%%", technical[i].value), "", 0, "L", false, 0, "")
		} else {
			pdf.CellFormat(colWidth, 6, "", "", 0, "L", false, 0, "")
		}
		if i < len(behavioral) {
			pdf.CellFormat(colWidth*0.6, 6, behavioral[i].label, "", 0, "L", false, 0, "")
			pdf.CellFormat(colWidth*0.4, 6, fmt.Sprintf("%.0f%%", behavioral[i].value), "", 1, "L", false, 0, "")
		} else {
			pdf.Ln(6)
		}
	}
	pdf.Ln(4)
}

func writeQuestionBlocks(pdf *gofpdf.Fpdf, session *entities.InterviewSession) {
	if len(session.Questions) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Questions & Answers", "", 1, "L", false, 0, "")

	numbers := make([]int, 0, len(session.Questions))
	for n := range session.Questions {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	width := pageWidth - 2*margin
	for _, n := range numbers {
		rec := session.Questions[n]

		pdf.SetFont("Helvetica", "B", 10)
		pdf.MultiCell(width, 5, fmt.Sprintf("Q%d. %s", n, rec.Question), "", "L", false)

		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(width, 5, "Answer: "+rec.Answer, "", "L", false)

		if rec.Correctness != nil && rec.Depth != nil && rec.Structure != nil {
			pdf.SetTextColor(midGray[0], midGray[1], midGray[2])
			pdf.SetFont("Helvetica", "I", 9)
			pdf.MultiCell(width, 5, fmt.Sprintf("Correctness %.1f  Depth %.1f  Structure %.1f",
				*rec.Correctness, *rec.Depth, *rec.Structure), "", "L", false)
		}
		if rec.Feedback != "" {
			pdf.SetTextColor(midGray[0], midGray[1], midGray[2])
			pdf.SetFont("Helvetica", "I", 9)
			pdf.MultiCell(width, 5, "Feedback: "+rec.Feedback, "", "L", false)
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(3)
	}
}

func writeSummary(pdf *gofpdf.Fpdf, session *entities.InterviewSession) {
	summary := session.FeedbackSummary
	if summary == nil {
		return
	}

	width := pageWidth - 2*margin

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Strengths", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, pro := range summary.Pros {
		pdf.MultiCell(width, 5, "+ "+pro, "", "L", false)
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Areas to Improve", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, con := range summary.Cons {
		pdf.MultiCell(width, 5, "- "+con, "", "L", false)
	}
	pdf.Ln(2)

	if summary.ImprovementPlan != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Improvement Plan", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(width, 5, summary.ImprovementPlan, "", "L", false)
	}
}
