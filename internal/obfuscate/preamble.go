package obfuscate

// banner is the fixed two-line comment prefix identifying the output as
// machine-obfuscated.
const banner = "--[[ Made By Hiroshi ]]--\n-- Obfuscated By Hiroshi"

// decoderSource is the runtime decoder embedded verbatim in every output.
// It turns the base64 payloads emitted by the encoding pass back into
// strings at the point the obfuscated code runs.
const decoderSource = `local function __B64(data)
    local b = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
    data = string.gsub(data, '[^' .. b .. '=]', '')
    return (data:gsub('=', ''):gsub('.', function(x)
        local r, f = '', (b:find(x) - 1)
        for i = 6, 1, -1 do
            r = r .. (f % 2 ^ i - f % 2 ^ (i - 1) > 0 and '1' or '0')
        end
        return r
    end):gsub('%d%d%d?%d?%d?%d?%d?%d?', function(x)
        if #x ~= 8 then return '' end
        local c = 0
        for i = 1, 8 do
            c = c + (x:sub(i, i) == '1' and 2 ^ (8 - i) or 0)
        end
        return string.char(c)
    end))
end`

// assemble prepends the banner and decoder preamble to a transformed body.
func assemble(body string) string {
	return banner + "\n\n" + decoderSource + "\n\n" + body
}
