package config

// Policyfile represents the structure of the policy.yaml file.
type Policyfile struct {
	Name      string        `yaml:"name"`
	RunList   []string      `yaml:"run_list"`
	CachePath string        `yaml:"cache_path"`
	Cookbooks []CookbookDTO `yaml:"cookbooks"`
}

// CookbookDTO represents one cookbook entry in the policy.
type CookbookDTO struct {
	Name       string `yaml:"name"`
	Constraint string `yaml:"constraint"`
	Path       string `yaml:"path"`
	CacheKey   string `yaml:"cache_key"`
	Origin     string `yaml:"origin"`
}
