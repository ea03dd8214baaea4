//go:build production

package answer

const productionBuild = true
