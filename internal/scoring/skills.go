package scoring

import (
	"regexp"
	"strings"
)

// SkillsDB 技能本体：评分时对JD和简历技能文本做整词匹配的固定技能清单
var SkillsDB = []string{
	// 编程语言
	"Python", "Java", "JavaScript", "TypeScript", "C", "C++", "C#", ".NET", ".NET Core",
	"PHP", "Laravel", "Ruby", "Ruby on Rails", "Go", "Golang", "Swift", "SwiftUI", "Kotlin", "R",
	"Rust", "Scala", "Perl", "Lua", "Elixir", "Haskell", "Dart",

	// Web与前端
	"HTML", "HTML5", "CSS", "CSS3", "SASS", "SCSS", "LESS", "Bootstrap", "Tailwind CSS", "Material UI",
	"React.js", "React Native", "Angular", "Vue.js", "jQuery",
	"Next.js", "Nuxt.js", "Gatsby", "Ember.js", "Backbone.js",
	"Ajax", "JSON", "GSAP Animation",

	// 数据库与存储
	"SQL", "MySQL", "PostgreSQL", "MongoDB", "Firebase", "NoSQL",
	"Oracle", "SQLite", "SQL Server", "Cassandra", "DynamoDB",
	"Redis", "Memcached", "Elasticsearch", "CouchDB", "Neo4j",
	"GraphQL", "Amazon Aurora",

	// 后端与API
	"API Development", "API Integrations", "REST", "REST API", "SOAP", "gRPC", "RESTful APIs",
	"WebSocket", "Socket.io", "GraphQL API", "Node.js", "Express.js", "Nest.js",

	// 云与DevOps
	"AWS", "Azure", "GCP", "Google Cloud", "DevOps",
	"EC2", "S3", "Lambda", "CloudFormation",
	"Docker", "Kubernetes", "K8s", "Terraform", "Ansible", "Chef", "Puppet",
	"Jenkins", "Travis CI", "CircleCI", "GitHub Actions", "CI/CD", "Git", "GitHub", "GitLab", "Bitbucket",
	"Linux", "Ubuntu", "CentOS", "Bash", "Shell Scripting", "PowerShell",
	"Windows Server", "Nginx", "Apache", "HAProxy", "Load Balancing",
	"Message Queues", "RabbitMQ", "Kafka", "ActiveMQ", "SQS", "SNS",

	// 数据分析与AI/ML
	"Excel", "Power BI", "Tableau", "Looker", "Metabase",
	"Apache Spark", "Hadoop", "Hive", "Pig", "Flink",
	"Pandas", "NumPy", "Scikit-learn", "TensorFlow", "Keras", "PyTorch", "OpenCV",
	"XGBoost", "LightGBM", "CatBoost", "Matplotlib", "Seaborn", "Plotly",
	"Statsmodels", "NLTK", "spaCy", "Computer Vision", "Deep Learning", "DL", "cv2",
	"Natural Language Processing", "NLP", "Recommender Systems", "Time Series", "Graph ML",
	"ML", "Machine Learning", "Data Science", "Statistics",
	"AI Automation", "Automations",

	// 地图与可视化
	"Mapbox", "CesiumJS", "GIS", "Geospatial Analysis",

	// 设计与协作工具
	"Canva", "Figma", "Adobe XD", "Sketch", "Photoshop", "Illustrator",

	// CMS与建站
	"WordPress", "WooCommerce", "Elementor",

	// 架构与模式
	"Microservices", "Monolithic Architecture", "Serverless", "Event-Driven Architecture",
	"MVC", "MVVM", "Domain-Driven Design", "CQRS", "Event Sourcing",
	"API Gateway", "Service Mesh", "Scaling", "Caching", "Sharding", "Replication",
	"ElasticSearch", "CDN",

	// 测试与QA
	"Selenium", "JUnit", "JUnit5", "JUnit4", "TestNG", "PyTest", "Mocha", "Jasmine",
	"Cypress", "Playwright", "Karma", "Protractor", "Postman", "REST Assured",
	"API Testing", "Load Testing", "Performance Testing", "JMeter", "Gatling", "API Integration",
	"Mockito", "Selenium WebDriver", "Cucumber", "Robot Framework",

	// 安全与合规
	"OAuth", "JWT", "OpenID", "SAML", "LDAP", "SSL/TLS", "HTTPS",
	"Encryption", "PKI", "Penetration Testing", "Vulnerability Assessment",
	"Network Security", "Firewalls", "IDS", "IPS", "WAF", "SIEM", "Splunk",
	"OWASP", "Security Auditing", "GDPR", "SOC2", "PCI-DSS", "ISO 27001",

	// 工具与监控
	"Docker Compose", "Helm", "Istio", "Linkerd", "Prometheus", "Grafana",
	"Logstash", "Kibana", "ELK Stack", "Fluentd", "Datadog",
	"Jira", "Confluence", "Trello", "Slack", "Microsoft Teams",

	// 移动与游戏开发
	"Android", "iOS", "Flutter", "Ionic", "Unity", "Unreal Engine", "Game Development",

	// 区块链
	"Blockchain", "Ethereum", "Solidity", "Smart Contracts",

	// 软技能
	"Communication", "Problem Solving", "Problem-Solving", "Teamwork", "Leadership",
	"Adaptability", "Time Management", "Analytical Thinking", "Analytical",
	"Critical Thinking", "Creativity", "Decision Making",
	"Interpersonal Skills", "Planning", "Mentoring", "Collaboration",
	"Problem Solver", "Learning Aptitude", "Team Player",
	"Presentation Skills", "Conflict Resolution", "Attention to Detail",
	"Negotiation", "Empathy", "Customer Focus", "Agile Methodologies",
	"Scrum", "Kanban", "Lean", "Project Management", "Stakeholder Management",
}

// skillPatterns 每个技能词的整词匹配模式，启动时编译一次
var skillPatterns = compileSkillPatterns()

func compileSkillPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(SkillsDB))
	for _, skill := range SkillsDB {
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(skill)+`\b`))
	}
	return patterns
}

// MatchSkills 返回文本中命中的技能本体词条，保持本体顺序且去重
func MatchSkills(text string) []string {
	var found []string
	seen := make(map[string]struct{})
	for i, pattern := range skillPatterns {
		if !pattern.MatchString(text) {
			continue
		}
		name := SkillsDB[i]
		if _, ok := seen[strings.ToLower(name)]; ok {
			continue
		}
		seen[strings.ToLower(name)] = struct{}{}
		found = append(found, name)
	}
	return found
}

// matchSkillSet 命中的技能词条小写集合，供交集计算使用
func matchSkillSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, name := range MatchSkills(text) {
		set[strings.ToLower(name)] = struct{}{}
	}
	return set
}
