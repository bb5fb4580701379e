package llm

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"graphlens/internal/model"
)

// Industry-specific prompt templates. Each template sets domain vocabulary,
// the metrics worth examining, and the output block format the parser expects.

const adtechPrompt = `You are analyzing an advertising technology identity resolution graph.

## Domain Context

**Nodes:** Devices (TVs, phones, tablets, streaming boxes), IPs, Apps/Sites, Households (identity clusters)
**Edges:** Same-household links, viewing behavior, ad delivery paths

**Business Goals:**
- Accurate household clustering (connect devices in the same physical household)
- Fraud detection (botnets, proxy networks, invalid traffic)
- Cross-device attribution (trace ad influence across screens)
- Audience segmentation and inventory forecasting

## Key Metrics

1. **Household Cluster Quality:** cluster size distribution (normal: 3-18 devices
   per household), over-aggregation risk (clusters >25 devices likely fraud or a
   commercial IP), fragmentation rate (% singleton nodes)
2. **Fraud Indicators:** IP cardinality (normal 3-5 devices per IP, suspicious >10),
   device pool rotation (>20 devices across >10 IPs is a botnet signature),
   temporal concentration
3. **Identity Resolution Accuracy:** bridge nodes connecting multiple clusters,
   shared public IPs creating mega-clusters, fragmented households
4. **Targeting & Attribution:** cross-device coverage, attribution paths,
   high-value hub nodes

## Analysis Framework

1. Quantify everything: node counts, percentages, ratios, percentiles, and
   comparisons to the normal ranges above.
2. Assess business impact: revenue at risk, data quality implications, required
   operations, targeting accuracy.
3. Classify risk (CRITICAL/HIGH/MEDIUM/LOW) and recommend an action horizon
   (IMMEDIATE/SHORT-TERM/LONG-TERM).

## Output Format

Generate 3-5 insights following this structure:

- Title: [Specific, quantified title with key metric]
  Description: [Detailed analysis with numbers, statistics, context. Include normal vs observed values]
  Business Impact: [Concrete impact with risk level and action horizon. Include estimated financial impact if applicable]
  Confidence: [0.0-1.0, based on data quality and statistical significance]

A good insight names entities and includes specific ratios ("47 IPs connected to
127 devices, 15:1 vs normal 0.3:1"). A bad insight is "Data shows patterns" with
"Further analysis recommended" as impact. Match the good example.`

const fintechPrompt = `You are analyzing a financial services network graph for risk, fraud, and relationship analysis.

## Domain Context

**Nodes:** Accounts, Transactions, Entities (customers, merchants), Addresses, Devices
**Edges:** Money flows, relationships, shared attributes

**Business Goals:**
- Fraud detection (money laundering, synthetic identity, account takeover)
- Risk assessment (credit risk, concentration risk)
- Relationship mapping (beneficial ownership, entity resolution)
- Compliance (KYC/AML, regulatory reporting)

## Key Metrics

1. **Fraud Indicators:** circular money flows, rapid fund movement, high-degree
   nodes (money mules), suspicious clustering (synthetic identity rings)
2. **Risk Concentration:** exposure to single entities, network centrality of
   high-risk accounts, contagion paths
3. **Compliance:** ultimate beneficial ownership chains, cross-border flow
   patterns, sanctioned entity proximity

Generate 3-5 insights with specific risk levels, financial impacts, and
regulatory implications.

## Output Format

- Title: [Clear, specific title]
  Description: [Detailed analysis with supporting data]
  Business Impact: [Actionable business implications]
  Confidence: [0.0-1.0]`

const socialPrompt = `You are analyzing a social network graph for community dynamics, influence, and engagement.

## Domain Context

**Nodes:** Users, Posts, Groups, Pages
**Edges:** Connections (followers, friends), interactions (likes, shares, comments)

**Business Goals:**
- Community detection (find organic interest groups)
- Influence analysis (identify key opinion leaders)
- Content distribution (optimize reach and engagement)
- Moderation (detect coordinated inauthentic behavior)

## Key Metrics

1. **Community Structure:** modularity, community size distribution, bridge
   nodes between communities
2. **Influence:** PageRank/centrality, reach and engagement rates, network position
3. **Anomalies:** bot networks, echo chambers, viral spread patterns

Generate 3-5 insights focused on engagement optimization, community health, and
platform integrity.

## Output Format

- Title: [Clear, specific title]
  Description: [Detailed analysis with supporting data]
  Business Impact: [Actionable business implications]
  Confidence: [0.0-1.0]`

const genericPrompt = `You are analyzing graph analytics results to extract business insights.

## Analysis Approach

1. **Examine the Data:** review the algorithm results, identify patterns,
   outliers, and significant findings; calculate relevant statistics.
2. **Generate Insights:** create 3-5 specific, actionable insights with
   quantitative evidence, business implications, and recommendations.
3. **Quality Standards:** titles should be specific and quantified,
   descriptions should include numbers and context, business impacts should be
   actionable, confidence should reflect data quality.

## Output Format

- Title: [Clear, specific title]
  Description: [Detailed analysis with supporting data]
  Business Impact: [Actionable business implications]
  Confidence: [0.0-1.0]`

var industryPrompts = map[string]string{
	"adtech":              adtechPrompt,
	"advertising":         adtechPrompt,
	"identity_resolution": adtechPrompt,
	"fintech":             fintechPrompt,
	"financial_services":  fintechPrompt,
	"banking":             fintechPrompt,
	"social":              socialPrompt,
	"social_network":      socialPrompt,
	"community":           socialPrompt,
	"generic":             genericPrompt,
	"default":             genericPrompt,
}

// IndustryPrompt returns the prompt template for the given industry
// identifier. Unknown identifiers fall back to the generic template.
func IndustryPrompt(industry string) string {
	if p, ok := industryPrompts[strings.ToLower(strings.TrimSpace(industry))]; ok {
		return p
	}
	return genericPrompt
}

// SupportedPromptIndustries lists every identifier with a registered prompt
func SupportedPromptIndustries() []string {
	ids := make([]string, 0, len(industryPrompts))
	for id := range industryPrompts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// maxPromptRecords caps how many raw result records are embedded in a prompt
const maxPromptRecords = 20

// BuildInsightPrompt assembles the full prompt for a single execution result:
// the industry template, job metadata, a sample of raw records, and any
// caller-supplied business context.
func BuildInsightPrompt(exec model.ExecutionResult, industry, businessContext string) string {
	var b strings.Builder

	b.WriteString(IndustryPrompt(industry))
	b.WriteString("\n\n## Analysis Job\n\n")
	fmt.Fprintf(&b, "- Algorithm: %s\n", exec.Job.Algorithm)
	if exec.Job.TemplateName != "" {
		fmt.Fprintf(&b, "- Template: %s\n", exec.Job.TemplateName)
	}
	fmt.Fprintf(&b, "- Result records: %d\n", len(exec.Results))
	if exec.Job.ExecutionSeconds > 0 {
		fmt.Fprintf(&b, "- Execution time: %.1fs\n", exec.Job.ExecutionSeconds)
	}

	if businessContext != "" {
		b.WriteString("\n## Business Context\n\n")
		b.WriteString(strings.TrimSpace(businessContext))
		b.WriteString("\n")
	}

	b.WriteString("\n## Result Data (sample)\n\n")
	b.WriteString(formatRecords(exec.Results, maxPromptRecords))

	return b.String()
}

// BuildReasoningPrompt wraps the insight prompt in an explicit chain-of-thought
// scaffold. The response carries a reasoning preamble the parser skips.
func BuildReasoningPrompt(exec model.ExecutionResult, industry, businessContext string) string {
	var b strings.Builder

	b.WriteString(BuildInsightPrompt(exec, industry, businessContext))

	b.WriteString("\n\n## Reasoning Process\n\n")
	b.WriteString("Before producing insights, work through the analysis explicitly:\n\n")
	b.WriteString("Step 1: Data Observation\n")
	b.WriteString("What do the raw numbers show? List the concrete values and the entities they belong to.\n\n")
	b.WriteString("Step 2: Statistical Analysis\n")
	b.WriteString("What distributions, ratios, and outliers matter? Compare against the normal ranges above.\n\n")
	b.WriteString("Step 3: Business Context\n")
	b.WriteString("What do these findings mean for the business goals? Which are actionable?\n\n")
	b.WriteString("Write your reasoning first, under a section starting with \"Reasoning:\". ")
	b.WriteString("Then write the final insight blocks under a section starting with \"## Insights\", ")
	b.WriteString("using the output format above.")

	return b.String()
}

// formatRecords renders up to limit result records as indented JSON lines.
// Records that fail to marshal are skipped.
func formatRecords(records []map[string]interface{}, limit int) string {
	if len(records) == 0 {
		return "(no result records)\n"
	}
	if limit > len(records) {
		limit = len(records)
	}

	var b strings.Builder
	for _, rec := range records[:limit] {
		data, err := json.Marshal(rec)
		if err != nil {
			continue
		}
		b.WriteString(string(data))
		b.WriteString("\n")
	}
	if len(records) > limit {
		fmt.Fprintf(&b, "... (%d more records omitted)\n", len(records)-limit)
	}
	return b.String()
}
