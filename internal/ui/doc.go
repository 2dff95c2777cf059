// Package ui holds the terminal color themes shared by the presentation
// layers, plus lipgloss styles for status banners.
package ui
