// Package sources reads and writes the files a reconciliation run consumes
// and produces: the borders dataset, the UNSD code table, the continents
// reference (JSON and workbook) and the SVG world map.
package sources
