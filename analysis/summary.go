package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"GEUNTAE/models"

	"google.golang.org/genai"
)

const (
	summaryModel   = "gemini-2.0-flash"
	summaryTimeout = 30 * time.Second
	// The prompt carries at most this many records; findings cover the rest.
	promptRecordLimit = 100
)

// Analyzer runs the rule-based checks and produces the upload summary. With
// no API key the summary is a deterministic template; with one, Gemini writes
// it and any failure falls back to the template. Analyze never fails.
type Analyzer struct {
	client *genai.Client
}

// NewAnalyzer builds an Analyzer. An empty apiKey yields a template-only
// analyzer, which is also what tests construct.
func NewAnalyzer(ctx context.Context, apiKey string) (*Analyzer, error) {
	if apiKey == "" {
		return &Analyzer{}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Analyzer{client: client}, nil
}

func (a *Analyzer) Analyze(ctx context.Context, records []models.AttendanceRecord) models.AnalysisResult {
	duplicates := FindDuplicates(records)
	warnings := FindWarnings(records)

	result := models.AnalysisResult{
		Duplicates: duplicates,
		Warnings:   warnings,
	}

	if a.client == nil {
		result.Summary = templateSummary(len(records), len(duplicates), len(warnings))
		return result
	}

	summary, err := a.generateSummary(ctx, records, duplicates, warnings)
	if err != nil {
		log.Printf("AI analysis error: %v", err)
		result.Summary = fmt.Sprintf("총 %d건 분석 완료. 중복 %d건, 주의사항 %d건 발견. (AI 상세 분석 불가)",
			len(records), len(duplicates), len(warnings))
		return result
	}

	result.Summary = summary
	return result
}

func templateSummary(records, duplicates, warnings int) string {
	parts := []string{fmt.Sprintf("총 %d건의 근태 기록을 분석했습니다.", records)}
	if duplicates > 0 {
		parts = append(parts, fmt.Sprintf("%d건의 중복 기록이 발견되었습니다.", duplicates))
	}
	if warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d건의 주의사항이 발견되었습니다.", warnings))
	}
	if duplicates == 0 && warnings == 0 {
		parts = append(parts, "특별한 이상사항은 발견되지 않았습니다.")
	}
	return strings.Join(parts, " ")
}

func (a *Analyzer) generateSummary(ctx context.Context, records []models.AttendanceRecord,
	duplicates []models.DuplicateEntry, warnings []models.WarningEntry) (string, error) {

	ctx, cancel := context.WithTimeout(ctx, summaryTimeout)
	defer cancel()

	resp, err := a.client.Models.GenerateContent(ctx, summaryModel,
		genai.Text(buildPrompt(records, duplicates, warnings)),
		&genai.GenerateContentConfig{MaxOutputTokens: 1500})
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("empty model response")
	}
	return text, nil
}

func buildPrompt(records []models.AttendanceRecord,
	duplicates []models.DuplicateEntry, warnings []models.WarningEntry) string {

	var sb strings.Builder
	sb.WriteString("당신은 근태 관리 전문가입니다. 다음 근태 데이터를 분석하고 우려스러운 패턴이나 이상사항을 한국어로 요약해주세요.\n\n")
	fmt.Fprintf(&sb, "근태 데이터 (총 %d건, 처음 %d건 표시):\n", len(records), promptRecordLimit)

	limit := len(records)
	if limit > promptRecordLimit {
		limit = promptRecordLimit
	}
	for _, r := range records[:limit] {
		fmt.Fprintf(&sb, "%s | %s | %s-%s | %s | %s | %s | 총%vh | 정규%vh | 연장%vh | 휴게%vh | 연차:%s\n",
			r.Date, r.Name, r.ClockIn, r.ClockOut, r.Category, r.Department, r.Workplace,
			r.TotalHours, r.RegularHours, r.OvertimeHours, r.BreakTime, r.AnnualLeave)
	}

	if len(duplicates) > 0 {
		sb.WriteString("\n발견된 중복:\n")
		for _, d := range duplicates {
			sb.WriteString(d.Details)
			sb.WriteString("\n")
		}
	}
	if len(warnings) > 0 {
		sb.WriteString("\n기본 점검 결과:\n")
		for _, w := range warnings {
			sb.WriteString(w.Message)
			sb.WriteString("\n")
		}
	}

	sb.WriteString(`
다음을 확인해주세요:
1. 중복 기록 외에 추가적인 이상 패턴
2. 근로기준법 관점에서 우려되는 사항 (주 52시간, 야간근로 등)
3. 데이터 일관성 문제
4. 전반적인 근태 현황 요약

간결하게 3-5문장으로 요약해주세요.`)

	return sb.String()
}
